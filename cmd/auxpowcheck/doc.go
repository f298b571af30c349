/*
Auxpowcheck checks the proof of work of a single block header, natively mined
or merge-mined through an AuxPow, against the consensus rules of a network.

The block is given as the hex encoding of its 80-byte header, followed by the
proof-of-work algorithm byte and, when the header version claims
merge-mining, the serialized AuxPow. It is read from --block or, when that
flag is omitted, from stdin.

Usage:

	auxpowcheck [OPTIONS]

The verdict is printed to stdout as "valid <hash>" or "invalid <hash>". The
exit status is 0 for a valid block, 1 for an invalid or undecodable one and
2 when the tool itself couldn't run.

Logs are written to stdout and, unless --nologfiles is given, to rotated
files in --logdir, which defaults to a directory under the application data
directory.

For an up-to-date help message:

	auxpowcheck --help
*/
package main
