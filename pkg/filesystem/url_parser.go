package filesystem

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultSFTPPort is used when an sftp:// root names no port.
const DefaultSFTPPort = 22

// ParsedPath is a walk root: either a local path or an SFTP location.
type ParsedPath struct {
	IsRemote bool

	// For local paths
	LocalPath string

	// For SFTP paths
	Host string
	Port int
	User string
	Path string // Remote path
}

// ParsePath parses a root string, detecting whether it's a local path or SFTP URL.
// SFTP URLs have the format: sftp://user@host:port/path/to/dir
// Port is optional (defaults to 22)
// Examples:
//   - sftp://joe@myserver.com/projects (relative to the remote home)
//   - sftp://joe@myserver.com:2222//srv/app (absolute remote path)
//   - ./projects (local path)
func ParsePath(root string) (*ParsedPath, error) {
	if strings.HasPrefix(root, "sftp://") {
		return parseSFTPURL(root)
	}

	return &ParsedPath{
		IsRemote:  false,
		LocalPath: root,
	}, nil
}

// Addr returns host:port for remote paths.
func (p *ParsedPath) Addr() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// Prefix returns the string that, prepended to a remote path, gives back
// a URL ParsePath resolves to that same path. Empty for local paths.
func (p *ParsedPath) Prefix() string {
	if !p.IsRemote {
		return ""
	}

	return fmt.Sprintf("sftp://%s@%s/", p.User, p.Addr())
}

// parseSFTPURL parses an SFTP URL into its components.
//
//nolint:cyclop // Complexity from comprehensive SFTP URL validation (scheme, user, host, port, path)
func parseSFTPURL(sftpURL string) (*ParsedPath, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, fmt.Errorf("SFTP URL must include username (sftp://user@host/path)") //nolint:err113,perfsprint,lll // URL validation with format guidance
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("SFTP URL must include host") //nolint:err113,perfsprint // URL validation error
	}

	port := DefaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
		port = p
	}

	// SFTP path convention:
	//   sftp://user@host/path  → relative to home directory (strip leading /)
	//   sftp://user@host//path → absolute path /path (strip one /)
	//   sftp://user@host       → home directory (.)
	remotePath := u.Path
	//nolint:gocritic // if-else chain is clearer than switch for mixed conditions (OR, prefix check, fallthrough)
	if remotePath == "" || remotePath == "/" {
		remotePath = "."
	} else if strings.HasPrefix(remotePath, "//") {
		remotePath = remotePath[1:]
	} else {
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     u.User.Username(),
		Path:     remotePath,
	}, nil
}
