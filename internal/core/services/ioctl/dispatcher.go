// Package ioctl routes numeric-keyed control requests either to the
// in-core power management table or through to the global/target setting
// stores.
package ioctl

import (
	"fmt"
	"sync"

	"github.com/lcalzada-xor/wland/internal/core/domain"
	"github.com/lcalzada-xor/wland/internal/core/ports"
)

// powerTable holds the in-core settings of the [IoctlFirst, IoctlLast)
// range.
type powerTable struct {
	powerSaveMode  uint32
	listenInterval uint32
	dtimEnable     uint32
	sleepTimeout   uint32
}

// Dispatcher is the single ioctl entry point. Direction is determined by
// which id constant of a get/set pair is used; on any error the value
// output is left untouched.
type Dispatcher struct {
	mu     sync.Mutex
	table  powerTable
	global ports.SettingStore
	target ports.SettingStore
}

// NewDispatcher wires the two pass-through stores.
func NewDispatcher(global, target ports.SettingStore) *Dispatcher {
	return &Dispatcher{
		table:  powerTable{dtimEnable: 1},
		global: global,
		target: target,
	}
}

// Dispatch executes one request. value is read for set ids and written
// for get ids.
func (d *Dispatcher) Dispatch(id domain.Ioctl, value *uint32) error {
	if value == nil {
		return fmt.Errorf("%w: nil value", domain.ErrInvalidParam)
	}

	switch {
	case id < domain.IoctlLast:
		return d.dispatchLocal(id, value)
	case id >= domain.IoctlSetGSetting && id < domain.IoctlSetTSetting:
		return d.global.Set(uint32(id-domain.IoctlSetGSetting), *value)
	case id >= domain.IoctlSetTSetting && id < domain.IoctlGetGSetting:
		return d.target.Set(uint32(id-domain.IoctlSetTSetting), *value)
	case id >= domain.IoctlGetGSetting && id < domain.IoctlGetTSetting:
		v, err := d.global.Get(uint32(id - domain.IoctlGetGSetting))
		if err != nil {
			return err
		}
		*value = v
		return nil
	case id >= domain.IoctlGetTSetting && id < domain.IoctlGetTSetting+1000:
		v, err := d.target.Get(uint32(id - domain.IoctlGetTSetting))
		if err != nil {
			return err
		}
		*value = v
		return nil
	default:
		return fmt.Errorf("%w: id %d", domain.ErrUnsupportedIoctl, id)
	}
}

func (d *Dispatcher) dispatchLocal(id domain.Ioctl, value *uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch id {
	case domain.IoctlSetPowerSaveMode:
		if *value > domain.PowerSaveDeepSleep {
			return fmt.Errorf("%w: power save mode %d", domain.ErrInvalidParam, *value)
		}
		d.table.powerSaveMode = *value
	case domain.IoctlGetPowerSaveMode:
		*value = d.table.powerSaveMode
	case domain.IoctlSetListenInterval:
		if *value > 16 {
			return fmt.Errorf("%w: listen interval %d out of range [0,16]", domain.ErrInvalidParam, *value)
		}
		d.table.listenInterval = *value
	case domain.IoctlGetListenInterval:
		*value = d.table.listenInterval
	case domain.IoctlSetDTIMEnable:
		if *value > 1 {
			return fmt.Errorf("%w: dtim enable %d, want 0 or 1", domain.ErrInvalidParam, *value)
		}
		d.table.dtimEnable = *value
	case domain.IoctlGetDTIMEnable:
		*value = d.table.dtimEnable
	case domain.IoctlSetSleepTimeout:
		d.table.sleepTimeout = *value
	case domain.IoctlGetSleepTimeout:
		*value = d.table.sleepTimeout
	default:
		return fmt.Errorf("%w: id %d", domain.ErrUnsupportedIoctl, id)
	}
	return nil
}
