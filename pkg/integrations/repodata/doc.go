// Package repodata reads conda channel indexes from repo.anaconda.com.
//
// Every channel publishes one repodata.json per platform subdirectory. Not
// every channel carries every platform, so [Supported] reports which
// combinations exist and [Client.Fetch] refuses the rest without touching
// the network.
//
//	c := repodata.NewClient()
//	rd, err := c.Fetch(ctx, repodata.ChannelMain, repodata.ArchLinux64)
//
// Entries from the "packages" and "packages.conda" sections are merged into
// a single map keyed by file name.
package repodata
