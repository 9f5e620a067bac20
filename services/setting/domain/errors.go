package domain

import "errors"

// Sentinel errors for the setting domain. Use errors.Is() to check these.
var (
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrSettingNotFound means the business never saved settings; callers
	// fall back to defaults.
	ErrSettingNotFound = errors.New("setting not found")
)
