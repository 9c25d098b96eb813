package service

// ValidationError reports bad or missing registration input. The handler
// layer maps it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConflictError reports a duplicate active phone number. Maps to 409.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }
