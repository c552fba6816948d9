package repodata

// Channel is a package channel hosted on repo.anaconda.com.
type Channel string

const (
	ChannelMain       Channel = "main"
	ChannelFree       Channel = "free"
	ChannelR          Channel = "r"
	ChannelPro        Channel = "pro"
	ChannelArchive    Channel = "archive"
	ChannelMROArchive Channel = "mro-archive"
	ChannelMSYS2      Channel = "msys2"
)

// Architecture is a conda platform subdirectory.
type Architecture string

const (
	ArchLinux64      Architecture = "linux-64"
	ArchLinux32      Architecture = "linux-32"
	ArchLinuxAarch64 Architecture = "linux-aarch64"
	ArchLinuxARMv6l  Architecture = "linux-armv6l"
	ArchLinuxARMv7l  Architecture = "linux-armv7l"
	ArchLinuxS390x   Architecture = "linux-s390x"
	ArchLinuxPPC64le Architecture = "linux-ppc64le"
	ArchOSXArm64     Architecture = "osx-arm64"
	ArchOSX64        Architecture = "osx-64"
	ArchOSX32        Architecture = "osx-32"
	ArchWin64        Architecture = "win-64"
	ArchWin32        Architecture = "win-32"
	ArchNoArch       Architecture = "noarch"
)

// Metadata is the "info" block of a repodata.json file.
type Metadata struct {
	Subdir   string `json:"subdir"`
	Arch     string `json:"arch,omitempty"`
	Platform string `json:"platform,omitempty"`
}

// PackageData describes one package file in a channel. Optional fields are
// empty when the index omits them.
type PackageData struct {
	Build         string   `json:"build"`
	BuildNumber   int      `json:"build_number"`
	Depends       []string `json:"depends"`
	MD5           string   `json:"md5"`
	SHA256        string   `json:"sha256"`
	Name          string   `json:"name"`
	Size          int64    `json:"size"`
	Subdir        string   `json:"subdir"`
	Version       string   `json:"version"`
	Timestamp     int64    `json:"timestamp,omitempty"`
	Date          string   `json:"date,omitempty"`
	TrackFeatures string   `json:"track_features,omitempty"`
	License       string   `json:"license,omitempty"`
	LicenseFamily string   `json:"license_family,omitempty"`
}

// Repodata is a parsed channel index for one architecture. Packages holds
// both the legacy .tar.bz2 entries and the .conda entries, keyed by file
// name.
type Repodata struct {
	Info            Metadata               `json:"info"`
	Packages        map[string]PackageData `json:"packages"`
	Removed         []string               `json:"removed"`
	RepodataVersion int                    `json:"repodata_version"`
}
