// Package paths confines caller-supplied paths to the allowed root.
//
// A Guard is built once at startup from the configured root directory and
// handed to every component that touches the filesystem. Resolve is the
// only way a relative path becomes an absolute one:
//
//	guard, err := paths.NewGuard("/srv/data")
//	if err != nil {
//	    // refuse to start
//	}
//	abs, err := guard.Resolve("notes/../todo.txt") // /srv/data/todo.txt
//	_, err = guard.Resolve("../etc/passwd")        // fserr.KindOutsideRoot
//
// # Rules
//
//   - Inputs are always joined onto the root; "/etc/passwd" means
//     <root>/etc/passwd.
//   - Symlinks are resolved before the containment check, so a link that
//     points outside the root is rejected.
//   - Containment is component-wise. A root of /a/b never admits /a/bc.
//   - Dangling and cyclic symlinks are rejected rather than guessed at.
package paths
