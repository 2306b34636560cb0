package compose

// Field IDs of the diagnostic entries emitted by the composer itself
const (
	FieldIDOverflow = "compose.overflow"
)

// Group IDs of dynamically expanded fields
const (
	GroupVehicleCategories = "vehicles.category"
	GroupVehicleFarms      = "vehicles.farm"
)

// User-facing values
const (
	ValueOnline             = "Online"
	ValueOffline            = "Offline"
	ValueProtected          = "Protected"
	ValueNoPassword         = "No password required"
	ValueNobodyOnline       = "Nobody online"
	ValueNoDemands          = "None active"
	ValueNone               = "None"
	ValueOn                 = "On"
	ValueOff                = "Off"
	ValueAdminSuffix        = " (admin)"
	ValueTruncated          = "…"
	LabelOverflow           = "Too many fields"
	ValueOverflowTemplate   = "%d fields are enabled but an embed holds at most %d. Hide some fields or enable rotation."
	ValueUnknownPlaceholder = "Unknown"
)

// Log messages
const (
	LogMsgPasswordConflict = "Both a password and the no-password flag are set; showing the password"
	LogMsgOverflow         = "Field count exceeds embed limit and rotation is disabled"
	LogMsgRotated          = "Rotated field window"
)
