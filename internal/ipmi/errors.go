package ipmi

import "codeberg.org/mutker/ipmictl/internal/errors"

const (
	// Connection Errors
	ErrInvalidConnection = errors.ErrorCode("ipmi_invalid_connection")

	// Command Errors
	ErrCommandLaunch  = errors.ErrorCode("ipmi_command_launch_failed")
	ErrCommandExited  = errors.ErrorCode("ipmi_command_exited")
	ErrCommandTimeout = errors.ErrorCode("ipmi_command_timeout")

	// Fan Control Errors
	ErrInvalidFanSpeed   = errors.ErrorCode("ipmi_invalid_fan_speed")
	ErrFanControlFailed  = errors.ErrorCode("ipmi_fan_control_failed")
	ErrDisableAutoFan    = errors.ErrorCode("ipmi_disable_auto_fan_failed")
	ErrSetFanSpeedFailed = errors.ErrorCode("ipmi_set_fan_speed_failed")

	// Power Errors
	ErrInvalidPowerAction = errors.ErrorCode("ipmi_invalid_power_action")
)
