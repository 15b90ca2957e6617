// Package fserr defines the failure taxonomy shared by the path guard and
// the filesystem operations.
//
// Every failure is an *Error tagged with a Kind. Transports switch on the
// Kind instead of inspecting message text:
//
//	if errors.Is(err, fserr.KindNotEmpty) {
//	    // ask the caller to retry with recursive=true
//	}
//
// Messages always name the tool and the caller's relative path, never the
// resolved absolute path.
package fserr
