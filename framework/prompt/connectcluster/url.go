package connectcluster

import (
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidURL          = stderrors.New("cluster url is not in a valid url format")
	ErrUnsupportedProtocol = stderrors.New("cluster url protocol is not supported")
)

// Message returns the text shown to the user for a NormalizeURL error.
func Message(err error) string {
	switch {
	case stderrors.Is(err, ErrUnsupportedProtocol):
		return "The protocol of the cluster url is not supported. Only HTTP and HTTPS are supported."
	case stderrors.Is(err, ErrInvalidURL):
		return "The cluster url is not in a valid url format."
	case stderrors.Is(err, ErrSettled):
		return "The prompt has already been answered."
	default:
		return err.Error()
	}
}

// NormalizeURL reduces a cluster URL to scheme://host[:port]. Only http and
// https are accepted; path, query and credentials are dropped.
//
//	NormalizeURL("HTTPS://Cluster.example.com:19080/Explorer") // "https://cluster.example.com:19080"
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", errors.Wrapf(ErrInvalidURL, "%q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Wrapf(ErrUnsupportedProtocol, "%q", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", errors.Wrapf(ErrInvalidURL, "%q has no host", raw)
	}
	return u.Scheme + "://" + strings.ToLower(u.Host), nil
}
