package domain

import "errors"

// Structural errors abort a run before any network activity.
var (
	ErrNilTree          = errors.New("bookmark tree is nil")
	ErrRootNotFolder    = errors.New("bookmark root must be a folder")
	ErrEmptyURL         = errors.New("link has an empty url")
	ErrFolderWithURL    = errors.New("folder carries a url")
	ErrLinkWithChildren = errors.New("link carries children")
	ErrCycle            = errors.New("bookmark tree contains a cycle")
)
