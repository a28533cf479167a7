package domain

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

type CheckInKind string

const (
	CheckInAutomatic CheckInKind = "automatic"
	CheckInManual    CheckInKind = "manual"
)
