package codec

import (
	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/arena"
	"github.com/vanir-db/vanir/pkg/schema"
)

// Built-in decode states for the scalar and string kinds. Struct and list
// value types compose these inside their own states; which string state a
// type uses is part of its declared representation, the decoder never picks.

// Uint32State decodes a uint32.
type Uint32State struct{ value uint32 }

func (s *Uint32State) VisitDecode(dec Decoder) error {
	v, err := dec.DecodeUint32()
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (s *Uint32State) Finish(*arena.Arena) (uint32, error) { return s.value, nil }

// Uint64State decodes a uint64.
type Uint64State struct{ value uint64 }

func (s *Uint64State) VisitDecode(dec Decoder) error {
	v, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (s *Uint64State) Finish(*arena.Arena) (uint64, error) { return s.value, nil }

// Uint128State decodes a schema.Uint128.
type Uint128State struct{ value schema.Uint128 }

func (s *Uint128State) VisitDecode(dec Decoder) error {
	v, err := dec.DecodeUint128()
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (s *Uint128State) Finish(*arena.Arena) (schema.Uint128, error) { return s.value, nil }

// AccountIDState decodes an account.ID.
type AccountIDState struct{ value account.ID }

func (s *AccountIDState) VisitDecode(dec Decoder) error {
	v, err := dec.DecodeAccountID()
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (s *AccountIDState) Finish(*arena.Arena) (account.ID, error) { return s.value, nil }

// BorrowedStringState decodes a string as a zero-copy view over the input
// buffer. The finished value must not outlive the buffer.
type BorrowedStringState struct{ value string }

func (s *BorrowedStringState) VisitDecode(dec Decoder) error {
	v, err := dec.DecodeBorrowedString()
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (s *BorrowedStringState) Finish(*arena.Arena) (string, error) { return s.value, nil }

// OwnedStringState decodes a string into the decode arena.
type OwnedStringState struct{ value string }

func (s *OwnedStringState) VisitDecode(dec Decoder) error {
	v, err := dec.DecodeOwnedString()
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (s *OwnedStringState) Finish(*arena.Arena) (string, error) { return s.value, nil }

// BorrowedBytesState decodes a byte slice as a zero-copy view over the input
// buffer.
type BorrowedBytesState struct{ value []byte }

func (s *BorrowedBytesState) VisitDecode(dec Decoder) error {
	v, err := dec.DecodeBorrowedBytes()
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (s *BorrowedBytesState) Finish(*arena.Arena) ([]byte, error) { return s.value, nil }

// OwnedBytesState decodes a byte slice into the decode arena.
type OwnedBytesState struct{ value []byte }

func (s *OwnedBytesState) VisitDecode(dec Decoder) error {
	v, err := dec.DecodeOwnedBytes()
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (s *OwnedBytesState) Finish(*arena.Arena) ([]byte, error) { return s.value, nil }

// ListState decodes a list of T. NewElement supplies a fresh decode state per
// element; element states are finished together when the list is finished.
type ListState[T any] struct {
	NewElement func() State[T]

	states []State[T]
}

func (l *ListState[T]) VisitDecode(dec Decoder) error {
	return dec.DecodeList(l)
}

func (l *ListState[T]) InitList(count int, _ *arena.Arena) error {
	l.states = make([]State[T], 0, count)
	return nil
}

func (l *ListState[T]) NextElement(dec Decoder) error {
	state := l.NewElement()
	if err := state.VisitDecode(dec); err != nil {
		return err
	}
	l.states = append(l.states, state)
	return nil
}

func (l *ListState[T]) Finish(a *arena.Arena) ([]T, error) {
	out := make([]T, len(l.states))
	for i, state := range l.states {
		v, err := state.Finish(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
