package host

import "golang.org/x/sys/unix"

const xattrPrefix = ""

var errNoAttr error = unix.ENOATTR
