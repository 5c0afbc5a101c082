package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultProbePort is the TLS port the certificate prober connects to.
	DefaultProbePort = "443"
	// DefaultProbeTimeout bounds the whole certificate probe, retries included.
	DefaultProbeTimeout = 8 * time.Second
	// DefaultProbeRetryInterval paces repeated handshake attempts.
	DefaultProbeRetryInterval = 500 * time.Millisecond
	// CertNotAfterLayout renders certificate expiry the way openssl prints notAfter.
	CertNotAfterLayout = "Jan _2 15:04:05 2006 GMT"
)

const (
	// ScanLogFilename is the append-only audit log written once per run.
	ScanLogFilename = "urlscore.log"
	// AppDirName names the per-user data directory.
	AppDirName = "urlscore"
)
