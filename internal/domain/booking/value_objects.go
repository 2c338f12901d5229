package booking

import (
	"errors"
	"strings"
)

const (
	MaxNoteLength         = 500
	MaxPaymentProofLength = 512
)

var (
	ErrNoteTooLong         = errors.New("notes are too long (max 500 characters)")
	ErrEmptyPaymentProof   = errors.New("payment proof reference cannot be empty")
	ErrPaymentProofTooLong = errors.New("payment proof reference is too long (max 512 characters)")
)

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// PaymentProof is an opaque reference to an uploaded transfer receipt.
type PaymentProof struct {
	ref string
}

func NewPaymentProof(ref string) (PaymentProof, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return PaymentProof{}, ErrEmptyPaymentProof
	}
	if len(ref) > MaxPaymentProofLength {
		return PaymentProof{}, ErrPaymentProofTooLong
	}
	return PaymentProof{ref: ref}, nil
}

func (p PaymentProof) String() string {
	return p.ref
}

func (p PaymentProof) IsEmpty() bool {
	return p.ref == ""
}
