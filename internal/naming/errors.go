package naming

import "errors"

var (
	// ErrResourceNotFound is returned when the name dictionary file does not exist.
	ErrResourceNotFound = errors.New("name dictionary not found")

	// ErrLabelNotFound is returned when the text carries no "Name:" label.
	ErrLabelNotFound = errors.New("name label not found")

	// ErrDateHeaderNotFound is returned when the text never mentions "date".
	ErrDateHeaderNotFound = errors.New("date header not found")

	// ErrNoDatesFound is returned when the date section holds no valid date.
	ErrNoDatesFound = errors.New("no valid dates found")

	// ErrEmptyName is returned by ShortCode for a name without tokens.
	ErrEmptyName = errors.New("canonical name is empty")

	// ErrNoDatesAvailable is returned by Compose for an empty date set.
	ErrNoDatesAvailable = errors.New("no dates available")
)
