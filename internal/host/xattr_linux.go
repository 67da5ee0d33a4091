package host

import "golang.org/x/sys/unix"

// Linux only permits unprivileged attributes in the user namespace.
const xattrPrefix = "user."

var errNoAttr error = unix.ENODATA
