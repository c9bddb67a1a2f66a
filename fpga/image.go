package fpga

import (
	"fmt"
	"log/slog"
)

// CheckImageReady verifies that the slot holds a loaded image exposing the
// wanted identifiers. If the identifiers do not match, the slot is rescanned
// once and described again, since an image loaded after bus enumeration
// shows stale identifiers until then.
func CheckImageReady(
	p Platform,
	slot int,
	want ImageID,
	logger *slog.Logger,
) error {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := p.DescribeImage(slot)
	if err != nil {
		return fmt.Errorf("%w: unable to get image information from slot %d: %v",
			ErrImageNotReady, slot, err)
	}

	if info.Status != StatusLoaded {
		return fmt.Errorf("%w: image in slot %d is %s",
			ErrImageNotReady, slot, info.Status)
	}

	logger.Info("Image PCI identifiers",
		"slot", slot,
		"vendor_id", fmt.Sprintf("0x%x", info.VendorID),
		"device_id", fmt.Sprintf("0x%x", info.DeviceID),
	)

	if info.ImageID == want {
		return nil
	}

	logger.Warn("Image does not show the expected PCI identifiers, rescanning",
		"slot", slot, "want", want.String())

	if err := p.Rescan(slot); err != nil {
		return fmt.Errorf("%w: unable to rescan slot %d: %v",
			ErrImageNotReady, slot, err)
	}

	info, err = p.DescribeImage(slot)
	if err != nil {
		return fmt.Errorf("%w: unable to get image information from slot %d: %v",
			ErrImageNotReady, slot, err)
	}

	logger.Info("Image PCI identifiers after rescan",
		"slot", slot,
		"vendor_id", fmt.Sprintf("0x%x", info.VendorID),
		"device_id", fmt.Sprintf("0x%x", info.DeviceID),
	)

	if info.ImageID != want {
		return fmt.Errorf("%w: slot %d shows %s, want %s",
			ErrImageNotReady, slot, info.ImageID, want)
	}

	return nil
}
