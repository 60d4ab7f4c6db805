package xmlparse

// Version identifies this package's release, mirroring the
// major/minor/custom triplet the embedded reference implementation
// exposes as compile-time macros.
const (
	VersionMajor  = 1
	VersionMinor  = 0
	VersionCustom = 0
)

// Version is the dotted-string rendering of VersionMajor.VersionMinor.VersionCustom.
var Version = "1.0.0"
