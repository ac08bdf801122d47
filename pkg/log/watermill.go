package log

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
)

type WatermillAdapter struct {
	entry *logrus.Entry
}

// NewWatermill adapts a logrus entry to the watermill.LoggerAdapter interface.
func NewWatermill(entry *logrus.Entry) watermill.LoggerAdapter {
	return WatermillAdapter{entry: entry}
}

func (a WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.entry.WithError(err).WithFields(logrus.Fields(fields)).Error(msg)
}

func (a WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

func (a WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (a WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).Trace(msg)
}

func (a WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return WatermillAdapter{entry: a.entry.WithFields(logrus.Fields(fields))}
}

// CorrelationPublisherDecorator copies the correlation id from the message
// context into its metadata, so consumers can pick it up on the other side.
type CorrelationPublisherDecorator struct {
	message.Publisher
}

func (d CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		if messages[i].Metadata.Get("correlation_id") == "" {
			messages[i].Metadata.Set("correlation_id", CorrelationIDFromContext(messages[i].Context()))
		}
	}
	return d.Publisher.Publish(topic, messages...)
}
