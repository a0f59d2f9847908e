/*
setsum computes, combines and compares order-independent multiset checksums.

Usage:
	setsum [OPTIONS] <command> [command-OPTIONS] [ARGS]

Commands:
	sum                 Prints the setsum of the lines (or files) given
	merge               Prints the merged setsum of the given digests
	unmerge             Prints BASE with the given digests subtracted
	equal               Checks whether two digests are equal
	verify-compaction   Checks that inputs == outputs + garbage
	apply               Applies one transaction to a checkpointed setsum

Every command that produces a setsum prints its 64 character lowercase hex
digest to stdout. Log output goes to stderr and, unless --nologfiles is
given, to rotated log files under --logdir.

Example: verify that splitting a file did not lose any line

	$ setsum sum all.txt
	$ setsum merge $(setsum sum part1.txt) $(setsum sum part2.txt)
*/
package main
