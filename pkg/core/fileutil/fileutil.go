// Package fileutil provides shared helpers for filesystem applets.
package fileutil

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// ResolveDest checks the destination of a cp/mv style command. More than one
// source needs an existing directory; the error result names applet.
func ResolveDest(st *vfs.State, applet string, sources []string, dest string) (bool, core.Result) {
	destIsDir := st.IsDir(dest)
	if len(sources) > 1 && !destIsDir {
		return false, core.Errorf(applet, "target '%s' is not a directory", dest)
	}
	return destIsDir, core.Result{}
}

// TargetPath returns the final target for a source and destination.
func TargetPath(src, dest string, destIsDir bool) string {
	if destIsDir {
		return vfs.Join(dest, vfs.Base(src))
	}
	return dest
}

// SplitOperands separates the last operand as the destination.
func SplitOperands(applet string, operands []string) ([]string, string, core.Result) {
	switch len(operands) {
	case 0:
		return nil, "", core.UsageError(applet, "missing file operand")
	case 1:
		return nil, "", core.Errorf(applet, "missing destination file operand after '%s'", operands[0])
	}
	return operands[:len(operands)-1], operands[len(operands)-1], core.Result{}
}
