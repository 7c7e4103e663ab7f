package enum

// FBRStatus represents the reporting state of a sale with the tax authority
type FBRStatus string

const (
	FBRStatusPending FBRStatus = "PENDING"
	FBRStatusSent    FBRStatus = "SENT"
	FBRStatusSuccess FBRStatus = "SUCCESS"
	FBRStatusFailed  FBRStatus = "FAILED"
)

// IsValid checks if the FBR status is valid
func (s FBRStatus) IsValid() bool {
	switch s {
	case FBRStatusPending, FBRStatusSent, FBRStatusSuccess, FBRStatusFailed:
		return true
	}
	return false
}

// IsFinal reports whether the status can no longer change through syncing
func (s FBRStatus) IsFinal() bool {
	return s == FBRStatusSuccess
}

func (s FBRStatus) String() string {
	return string(s)
}
