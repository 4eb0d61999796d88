package cafe

import "errors"

var (
	// ErrUnknownSlot is returned for a day or period that is not on the schedule
	ErrUnknownSlot = errors.New("unknown day or period")
	// ErrQuotaDay is returned when named attendance is written for the quota day
	ErrQuotaDay = errors.New("day is served by quota, not by name")
	// ErrParticipantNotFound is returned for an unknown participant ID
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrUnknownFlag is returned for a UI flag that is not defined
	ErrUnknownFlag = errors.New("unknown flag")
)
