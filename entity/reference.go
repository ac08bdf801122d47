package entity

import (
	"math/rand"
	"strings"
)

// ReferencePrefix is part of the public contract: every customer-facing
// booking reference has the form RRD-XXXXXX.
const ReferencePrefix = "RRD-"

// referenceAlphabet leaves out 0/O/1/I/L so a reference survives being read
// out over the phone.
const referenceAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const referenceSuffixLength = 6

// NewBookingReference returns a fresh public booking reference. No lookup
// against existing bookings is done here: with 31^6 possible suffixes a
// collision is accepted as vanishingly unlikely, and the unique constraint
// on booking_reference turns the losing insert into ErrDuplicateReference.
func NewBookingReference() string {
	var sb strings.Builder
	sb.Grow(len(ReferencePrefix) + referenceSuffixLength)
	sb.WriteString(ReferencePrefix)
	for i := 0; i < referenceSuffixLength; i++ {
		sb.WriteByte(referenceAlphabet[rand.Intn(len(referenceAlphabet))])
	}
	return sb.String()
}
