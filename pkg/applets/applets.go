// Package applets assembles the default command table.
package applets

import (
	"github.com/rcarmo/go-shellsim/pkg/applets/apt"
	"github.com/rcarmo/go-shellsim/pkg/applets/awk"
	"github.com/rcarmo/go-shellsim/pkg/applets/cat"
	"github.com/rcarmo/go-shellsim/pkg/applets/cd"
	"github.com/rcarmo/go-shellsim/pkg/applets/chmod"
	"github.com/rcarmo/go-shellsim/pkg/applets/chown"
	"github.com/rcarmo/go-shellsim/pkg/applets/clear"
	"github.com/rcarmo/go-shellsim/pkg/applets/cp"
	"github.com/rcarmo/go-shellsim/pkg/applets/crontab"
	"github.com/rcarmo/go-shellsim/pkg/applets/cut"
	"github.com/rcarmo/go-shellsim/pkg/applets/df"
	"github.com/rcarmo/go-shellsim/pkg/applets/diff"
	"github.com/rcarmo/go-shellsim/pkg/applets/dig"
	"github.com/rcarmo/go-shellsim/pkg/applets/dnf"
	"github.com/rcarmo/go-shellsim/pkg/applets/dpkg"
	"github.com/rcarmo/go-shellsim/pkg/applets/du"
	"github.com/rcarmo/go-shellsim/pkg/applets/echo"
	"github.com/rcarmo/go-shellsim/pkg/applets/env"
	"github.com/rcarmo/go-shellsim/pkg/applets/export"
	"github.com/rcarmo/go-shellsim/pkg/applets/file"
	"github.com/rcarmo/go-shellsim/pkg/applets/find"
	"github.com/rcarmo/go-shellsim/pkg/applets/free"
	"github.com/rcarmo/go-shellsim/pkg/applets/grep"
	"github.com/rcarmo/go-shellsim/pkg/applets/gunzip"
	"github.com/rcarmo/go-shellsim/pkg/applets/gzip"
	"github.com/rcarmo/go-shellsim/pkg/applets/head"
	"github.com/rcarmo/go-shellsim/pkg/applets/help"
	"github.com/rcarmo/go-shellsim/pkg/applets/history"
	"github.com/rcarmo/go-shellsim/pkg/applets/hostname"
	"github.com/rcarmo/go-shellsim/pkg/applets/ionice"
	"github.com/rcarmo/go-shellsim/pkg/applets/ip"
	"github.com/rcarmo/go-shellsim/pkg/applets/journalctl"
	"github.com/rcarmo/go-shellsim/pkg/applets/kill"
	"github.com/rcarmo/go-shellsim/pkg/applets/killall"
	"github.com/rcarmo/go-shellsim/pkg/applets/ln"
	"github.com/rcarmo/go-shellsim/pkg/applets/logger"
	"github.com/rcarmo/go-shellsim/pkg/applets/logname"
	"github.com/rcarmo/go-shellsim/pkg/applets/ls"
	"github.com/rcarmo/go-shellsim/pkg/applets/lsblk"
	"github.com/rcarmo/go-shellsim/pkg/applets/mkdir"
	"github.com/rcarmo/go-shellsim/pkg/applets/mount"
	"github.com/rcarmo/go-shellsim/pkg/applets/mv"
	"github.com/rcarmo/go-shellsim/pkg/applets/nc"
	"github.com/rcarmo/go-shellsim/pkg/applets/nice"
	"github.com/rcarmo/go-shellsim/pkg/applets/nohup"
	"github.com/rcarmo/go-shellsim/pkg/applets/nproc"
	"github.com/rcarmo/go-shellsim/pkg/applets/pgrep"
	"github.com/rcarmo/go-shellsim/pkg/applets/pidof"
	"github.com/rcarmo/go-shellsim/pkg/applets/ping"
	"github.com/rcarmo/go-shellsim/pkg/applets/pkill"
	"github.com/rcarmo/go-shellsim/pkg/applets/printf"
	"github.com/rcarmo/go-shellsim/pkg/applets/ps"
	"github.com/rcarmo/go-shellsim/pkg/applets/pwd"
	"github.com/rcarmo/go-shellsim/pkg/applets/renice"
	"github.com/rcarmo/go-shellsim/pkg/applets/rm"
	"github.com/rcarmo/go-shellsim/pkg/applets/rmdir"
	"github.com/rcarmo/go-shellsim/pkg/applets/rpm"
	"github.com/rcarmo/go-shellsim/pkg/applets/sed"
	"github.com/rcarmo/go-shellsim/pkg/applets/setsid"
	"github.com/rcarmo/go-shellsim/pkg/applets/sha256sum"
	"github.com/rcarmo/go-shellsim/pkg/applets/sleep"
	"github.com/rcarmo/go-shellsim/pkg/applets/sort"
	"github.com/rcarmo/go-shellsim/pkg/applets/ss"
	"github.com/rcarmo/go-shellsim/pkg/applets/startstopdaemon"
	"github.com/rcarmo/go-shellsim/pkg/applets/systemctl"
	"github.com/rcarmo/go-shellsim/pkg/applets/tail"
	"github.com/rcarmo/go-shellsim/pkg/applets/tar"
	"github.com/rcarmo/go-shellsim/pkg/applets/taskset"
	"github.com/rcarmo/go-shellsim/pkg/applets/tee"
	timecmd "github.com/rcarmo/go-shellsim/pkg/applets/time"
	"github.com/rcarmo/go-shellsim/pkg/applets/timeout"
	"github.com/rcarmo/go-shellsim/pkg/applets/top"
	"github.com/rcarmo/go-shellsim/pkg/applets/touch"
	"github.com/rcarmo/go-shellsim/pkg/applets/tr"
	"github.com/rcarmo/go-shellsim/pkg/applets/umask"
	"github.com/rcarmo/go-shellsim/pkg/applets/umount"
	"github.com/rcarmo/go-shellsim/pkg/applets/uniq"
	"github.com/rcarmo/go-shellsim/pkg/applets/uptime"
	"github.com/rcarmo/go-shellsim/pkg/applets/users"
	"github.com/rcarmo/go-shellsim/pkg/applets/w"
	"github.com/rcarmo/go-shellsim/pkg/applets/watch"
	"github.com/rcarmo/go-shellsim/pkg/applets/wc"
	"github.com/rcarmo/go-shellsim/pkg/applets/wget"
	"github.com/rcarmo/go-shellsim/pkg/applets/which"
	"github.com/rcarmo/go-shellsim/pkg/applets/who"
	"github.com/rcarmo/go-shellsim/pkg/applets/whoami"
	"github.com/rcarmo/go-shellsim/pkg/applets/xargs"
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Table is the default command set.
var Table = []core.Applet{
	// filesystem
	{Command: "ls", Summary: "list directory contents", Main: ls.Run},
	{Command: "ll", Summary: "list directory contents in long format", Main: with(ls.Run, "-l")},
	{Command: "cd", Summary: "change the working directory", Main: cd.Run},
	{Command: "pwd", Summary: "print the working directory", Main: pwd.Run},
	{Command: "cp", Summary: "copy files and directories", Main: cp.Run},
	{Command: "mv", Summary: "move or rename files", Main: mv.Run},
	{Command: "rm", Summary: "remove files or directories", Main: rm.Run},
	{Command: "rmdir", Summary: "remove empty directories", Main: rmdir.Run},
	{Command: "mkdir", Summary: "make directories", Main: mkdir.Run},
	{Command: "touch", Summary: "create files or update timestamps", Main: touch.Run},
	{Command: "ln", Summary: "make links between files", Main: ln.Run},
	{Command: "cat", Summary: "concatenate files and print them", Main: cat.Run},
	{Command: "find", Summary: "search for files in a directory tree", Main: find.Run},
	{Command: "file", Summary: "determine file type", Main: file.Run},

	// text
	{Command: "grep", Summary: "print lines matching a pattern", Main: grep.Run},
	{Command: "egrep", Summary: "grep -E", Main: with(grep.Run, "-E")},
	{Command: "fgrep", Summary: "grep -F", Main: with(grep.Run, "-F")},
	{Command: "sort", Summary: "sort lines of text", Main: sort.Run},
	{Command: "uniq", Summary: "report or omit repeated lines", Main: uniq.Run},
	{Command: "cut", Summary: "remove sections from each line", Main: cut.Run},
	{Command: "head", Summary: "output the first part of files", Main: head.Run},
	{Command: "tail", Summary: "output the last part of files", Main: tail.Run},
	{Command: "wc", Summary: "count lines, words and bytes", Main: wc.Run},
	{Command: "tr", Summary: "translate or delete characters", Main: tr.Run},
	{Command: "tee", Summary: "copy input to files and output", Main: tee.Run},
	{Command: "diff", Summary: "compare files line by line", Main: diff.Run},
	{Command: "sed", Summary: "stream editor", Main: sed.Run},
	{Command: "awk", Summary: "pattern scanning and processing language", Main: awk.Run},
	{Command: "echo", Summary: "display a line of text", Main: echo.Run},
	{Command: "printf", Summary: "format and print data", Main: printf.Run},

	// permissions
	{Command: "chmod", Summary: "change file mode bits", Main: chmod.Run},
	{Command: "chown", Summary: "change file owner and group", Main: chown.Run},
	{Command: "umask", Summary: "get or set the file mode creation mask", Main: umask.Run},

	// shell
	{Command: "export", Summary: "set environment variables", Main: export.Run},
	{Command: "unset", Summary: "remove environment variables", Main: export.RunUnset},
	{Command: "env", Summary: "print the environment or run a command in it", Main: env.Run},
	{Command: "history", Summary: "show the command history", Main: history.Run},
	{Command: "clear", Summary: "clear the terminal screen", Main: clear.Run},
	{Command: "help", Summary: "list the available commands", Main: help.Run},
	{Command: "whoami", Summary: "print the current user name", Main: whoami.Run},
	{Command: "hostname", Summary: "show or set the host name", Main: hostname.Run},
	{Command: "which", Summary: "locate a command", Main: which.Run},
	{Command: "type", Summary: "describe how a name would be run", Main: which.RunType},
	{Command: "sleep", Summary: "delay for a specified amount of time", Main: sleep.Run},
	{Command: "uptime", Summary: "tell how long the system has been running", Main: uptime.Run},
	{Command: "free", Summary: "display amount of free and used memory", Main: free.Run},
	{Command: "nproc", Summary: "print the number of processing units", Main: nproc.Run},
	{Command: "time", Summary: "time a command", Main: timecmd.Run},
	{Command: "who", Summary: "show who is logged on", Main: who.Run},
	{Command: "w", Summary: "show who is logged on and what they are doing", Main: w.Run},
	{Command: "users", Summary: "print the user names of users currently logged in", Main: users.Run},
	{Command: "logname", Summary: "print the user's login name", Main: logname.Run},
	{Command: "xargs", Summary: "build and execute command lines from standard input", Main: xargs.Run},
	{Command: "timeout", Summary: "run a command with a time limit", Main: timeout.Run},
	{Command: "watch", Summary: "execute a program and show its output", Main: watch.Run},

	// processes
	{Command: "ps", Summary: "report a snapshot of the current processes", Feature: core.FeatureProcesses, Main: ps.Run},
	{Command: "kill", Summary: "send a signal to a process", Feature: core.FeatureProcesses, Main: kill.Run},
	{Command: "killall", Summary: "kill processes by name", Feature: core.FeatureProcesses, Main: killall.Run},
	{Command: "nice", Summary: "run a program with modified scheduling priority", Feature: core.FeatureProcesses, Main: nice.Run},
	{Command: "renice", Summary: "alter priority of running processes", Feature: core.FeatureProcesses, Main: renice.Run},
	{Command: "pgrep", Summary: "look up processes by name", Feature: core.FeatureProcesses, Main: pgrep.Run},
	{Command: "pkill", Summary: "signal processes by name", Feature: core.FeatureProcesses, Main: pkill.Run},
	{Command: "pidof", Summary: "find the process ID of a running program", Feature: core.FeatureProcesses, Main: pidof.Run},
	{Command: "top", Summary: "display processes", Feature: core.FeatureProcesses, Main: top.Run},
	{Command: "nohup", Summary: "run a command immune to hangups", Feature: core.FeatureProcesses, Main: nohup.Run},
	{Command: "setsid", Summary: "run a program in a new session", Feature: core.FeatureProcesses, Main: setsid.Run},
	{Command: "taskset", Summary: "set or retrieve a process's CPU affinity", Feature: core.FeatureProcesses, Main: taskset.Run},
	{Command: "ionice", Summary: "set or get process I/O scheduling class and priority", Feature: core.FeatureProcesses, Main: ionice.Run},
	{Command: "start-stop-daemon", Summary: "start and stop system daemon programs", Feature: core.FeatureProcesses, Main: startstopdaemon.Run},

	// cron
	{Command: "crontab", Summary: "maintain crontab files", Feature: core.FeatureCron, Main: crontab.Run},

	// services
	{Command: "systemctl", Summary: "control the service manager", Feature: core.FeatureServices, Main: systemctl.Run},
	{Command: "journalctl", Summary: "query the journal", Feature: core.FeatureServices, Main: journalctl.Run},
	{Command: "logger", Summary: "enter messages into the system log", Feature: core.FeatureServices, Main: logger.Run},

	// storage
	{Command: "mount", Summary: "mount a filesystem", Feature: core.FeatureStorage, Main: mount.Run},
	{Command: "umount", Summary: "unmount a filesystem", Feature: core.FeatureStorage, Main: umount.Run},
	{Command: "df", Summary: "report filesystem space usage", Feature: core.FeatureStorage, Main: df.Run},
	{Command: "du", Summary: "estimate file space usage", Feature: core.FeatureStorage, Main: du.Run},
	{Command: "lsblk", Summary: "list block devices", Feature: core.FeatureStorage, Main: lsblk.Run},

	// packages
	{Command: "apt", Summary: "package manager", Feature: core.FeaturePackages, Main: apt.Run},
	{Command: "apt-get", Summary: "package handling utility", Feature: core.FeaturePackages, Main: apt.RunGet},
	{Command: "dpkg", Summary: "query the package database", Feature: core.FeaturePackages, Main: dpkg.Run},
	{Command: "dnf", Summary: "package manager", Feature: core.FeaturePackages, Main: dnf.Run},
	{Command: "yum", Summary: "package manager", Feature: core.FeaturePackages, Main: dnf.Run},
	{Command: "rpm", Summary: "query the package database", Feature: core.FeaturePackages, Main: rpm.Run},

	// network
	{Command: "ip", Summary: "show and manipulate network interfaces and routes", Feature: core.FeatureNetwork, Main: ip.Run},
	{Command: "ping", Summary: "send ICMP echo requests", Feature: core.FeatureNetwork, Main: ping.Run},
	{Command: "ss", Summary: "investigate sockets", Feature: core.FeatureNetwork, Main: ss.Run},
	{Command: "dig", Summary: "DNS lookup utility", Feature: core.FeatureNetwork, Main: dig.Run},
	{Command: "host", Summary: "DNS lookup utility", Feature: core.FeatureNetwork, Main: dig.RunHost},
	{Command: "nc", Summary: "arbitrary TCP connections", Feature: core.FeatureNetwork, Main: nc.Run},
	{Command: "wget", Summary: "non-interactive network downloader", Feature: core.FeatureNetwork, Main: wget.Run},

	// archive
	{Command: "tar", Summary: "create, list or extract archives", Feature: core.FeatureArchive, Main: tar.Run},
	{Command: "sha256sum", Summary: "compute and check checksums", Feature: core.FeatureArchive, Main: sha256sum.Run},
	{Command: "gzip", Summary: "compress files", Feature: core.FeatureArchive, Main: gzip.Run},
	{Command: "gunzip", Summary: "decompress files", Feature: core.FeatureArchive, Main: gunzip.Run},
	{Command: "zcat", Summary: "decompress files to standard output", Feature: core.FeatureArchive, Main: gunzip.RunZcat},
}

// Default returns a registry holding Table.
func Default() *core.Registry {
	r := core.NewRegistry()
	for _, a := range Table {
		r.Register(a)
	}
	return r
}

// with prepends fixed arguments, for the alias commands.
func with(run core.RunFunc, fixed ...string) core.RunFunc {
	return func(ctx *core.Context, args []string) core.Result {
		return run(ctx, append(append([]string(nil), fixed...), args...))
	}
}
