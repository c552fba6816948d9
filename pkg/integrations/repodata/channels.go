package repodata

import (
	"slices"

	"github.com/matzehuels/pkgutils/pkg/errors"
)

var (
	// Most channels kept the full legacy platform list.
	legacyArchs = []Architecture{
		ArchLinux64, ArchLinux32, ArchLinuxARMv6l, ArchLinuxARMv7l, ArchLinuxPPC64le,
		ArchOSX64, ArchOSX32, ArchWin64, ArchWin32, ArchNoArch,
	}

	supported = map[Channel][]Architecture{
		ChannelMain: {
			ArchLinux64, ArchLinux32, ArchLinuxAarch64, ArchLinuxS390x, ArchLinuxPPC64le,
			ArchOSX64, ArchOSXArm64, ArchWin64, ArchWin32, ArchNoArch,
		},
		ChannelFree:       legacyArchs,
		ChannelR:          legacyArchs,
		ChannelPro:        legacyArchs,
		ChannelArchive:    legacyArchs,
		ChannelMROArchive: legacyArchs,
		ChannelMSYS2:      {ArchWin64, ArchWin32},
	}
)

// Channels returns every known channel in a stable order.
func Channels() []Channel {
	return []Channel{
		ChannelMain, ChannelFree, ChannelR, ChannelPro,
		ChannelArchive, ChannelMROArchive, ChannelMSYS2,
	}
}

// Architectures returns the architectures channel publishes, or nil for an
// unknown channel.
func Architectures(channel Channel) []Architecture {
	return slices.Clone(supported[channel])
}

// Supported reports whether channel publishes an index for arch.
func Supported(channel Channel, arch Architecture) bool {
	return slices.Contains(supported[channel], arch)
}

// checkTarget rejects unknown channels and architectures a channel does not
// carry, without making a request.
func checkTarget(channel Channel, arch Architecture) error {
	archs, ok := supported[channel]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown channel: %s", channel)
	}
	if !slices.Contains(archs, arch) {
		return errors.New(errors.ErrCodeInvalidInput, "architecture %s is not available on channel %s", arch, channel)
	}
	return nil
}
