package gateway

import (
	"context"
	"sync"
)

type SheetsMock struct {
	mock sync.Mutex

	// FailWith, when set, makes every AppendRow return that error.
	FailWith error

	Rows map[string][][]string
}

func (m *SheetsMock) AppendRow(ctx context.Context, sheetName string, row []string) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}

	if m.Rows == nil {
		m.Rows = map[string][][]string{}
	}
	m.Rows[sheetName] = append(m.Rows[sheetName], row)
	return nil
}

func (m *SheetsMock) SheetRows(sheetName string) [][]string {
	m.mock.Lock()
	defer m.mock.Unlock()

	rows := make([][]string, len(m.Rows[sheetName]))
	copy(rows, m.Rows[sheetName])
	return rows
}
