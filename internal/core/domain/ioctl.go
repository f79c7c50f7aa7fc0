package domain

// Ioctl identifies one control setting. Get and set share the id space;
// the constant used determines the direction.
type Ioctl uint32

// In-core power management table, ids [IoctlFirst, IoctlLast).
const (
	IoctlSetPowerSaveMode Ioctl = iota
	IoctlGetPowerSaveMode
	IoctlSetListenInterval // integer value 0 - 16
	IoctlGetListenInterval
	IoctlSetDTIMEnable // 0 disable, 1 enable
	IoctlGetDTIMEnable
	IoctlSetSleepTimeout // power save entry delay in ms
	IoctlGetSleepTimeout
	IoctlLast

	IoctlFirst = IoctlSetPowerSaveMode
)

// Pass-through ranges. Each range forwards to a setting store with the
// base subtracted from the id.
const (
	IoctlSetGSetting Ioctl = 1000 // global setting store, set
	IoctlSetTSetting Ioctl = 2000 // target setting store, set
	IoctlGetGSetting Ioctl = 3000 // global setting store, get
	IoctlGetTSetting Ioctl = 4000 // target setting store, get
)

// PowerSaveMode values for IoctlSetPowerSaveMode.
const (
	PowerSaveOff uint32 = iota
	PowerSaveSleep
	PowerSaveDeepSleep
)
