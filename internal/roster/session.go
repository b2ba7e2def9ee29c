package roster

import (
	"memberbook/internal/attach"
	"memberbook/internal/model"
)

type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpen
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpen:
		return "open"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Field names a draft field addressable by UpdateField.
type Field string

const (
	FieldPrefix    Field = "prefix"
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldBirthDate Field = "birth_date"
)

// Session is the single in-flight edit draft. The draft is a full copy
// of a cache record and diverges locally until Submit; nothing reads it
// through the cache or the projected view. Phase transitions:
//
//	Closed -> Open        (Open)
//	Open   -> Closed      (Cancel)
//	Open   -> Submitting  (beginSubmit)
//	Submitting -> Closed  (submit success)
//	Submitting -> Open    (submit failure, draft preserved)
type Session struct {
	phase        Phase
	draft        model.Member
	birthDate    model.Date
	pendingImage string
}

func (s *Session) Phase() Phase { return s.phase }

// Draft returns the current draft copy; ok is false when no session is
// open.
func (s *Session) Draft() (model.Member, bool) {
	if s.phase == PhaseClosed {
		return model.Member{}, false
	}
	return s.draft, true
}

func (s *Session) BirthDate() model.Date { return s.birthDate }

func (s *Session) PendingImage() string { return s.pendingImage }

// Open loads m into a fresh draft. The birth date is normalized to a
// calendar date for editing; the record's existing image becomes the
// pending image. Valid only from Closed.
func (s *Session) Open(m model.Member) error {
	if s.phase != PhaseClosed {
		return errPhase("open edit", s.phase)
	}
	s.draft = m
	s.birthDate = model.DateOf(m.BirthDate)
	s.pendingImage = m.ProfileImage
	s.phase = PhaseOpen
	return nil
}

// UpdateField sets exactly the named draft field from its string form.
// No cross-field validation happens here.
func (s *Session) UpdateField(f Field, value string) error {
	if s.phase != PhaseOpen {
		return errPhase("update field", s.phase)
	}
	switch f {
	case FieldPrefix:
		p, err := model.ParsePrefix(value)
		if err != nil {
			return err
		}
		s.draft.Prefix = p
	case FieldFirstName:
		s.draft.FirstName = value
	case FieldLastName:
		s.draft.LastName = value
	case FieldBirthDate:
		d, err := model.ParseDate(value)
		if err != nil {
			return err
		}
		s.birthDate = d
	default:
		return errPhase("update field "+string(f), s.phase)
	}
	return nil
}

// UpdateImage encodes raw file bytes and stages the result as both the
// pending image and the draft's profile image.
func (s *Session) UpdateImage(data []byte) error {
	if s.phase != PhaseOpen {
		return errPhase("update image", s.phase)
	}
	uri, err := attach.Encode(data)
	if err != nil {
		return err
	}
	s.pendingImage = uri
	s.draft.ProfileImage = uri
	return nil
}

// Cancel discards the draft without touching the cache or the remote
// store. Valid only from Open: a submit in flight is not cancellable.
func (s *Session) Cancel() error {
	if s.phase != PhaseOpen {
		return errPhase("cancel edit", s.phase)
	}
	s.reset()
	return nil
}

// beginSubmit moves to Submitting and returns the wire payload: the
// draft with the edited calendar date denormalized back to a timestamp
// and the pending image attached.
func (s *Session) beginSubmit() (model.Member, error) {
	if s.phase != PhaseOpen {
		return model.Member{}, errPhase("submit edit", s.phase)
	}
	s.phase = PhaseSubmitting
	payload := s.draft
	payload.BirthDate = s.birthDate.Time()
	payload.ProfileImage = s.pendingImage
	return payload, nil
}

// completeSubmit resolves an in-flight submit. Success closes the
// session; failure returns to Open with the draft intact for retry.
func (s *Session) completeSubmit(ok bool) {
	if s.phase != PhaseSubmitting {
		return
	}
	if ok {
		s.reset()
		return
	}
	s.phase = PhaseOpen
}

func (s *Session) reset() {
	*s = Session{}
}
