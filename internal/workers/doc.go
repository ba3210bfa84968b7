/*
Package workers sizes the manifest generator's write fan-out.

Count uses runtime.GOMAXPROCS rather than runtime.NumCPU so that container
CPU limits are respected (Go 1.19+ sets GOMAXPROCS from the cgroup limit).
ForIO applies the I/O-bound multiplier of two workers per CPU:

	g.SetLimit(workers.ForIO(16))

# Environment Variable Override

GALLERY_WORKERS fixes the worker count, still capped by the limit argument.
Invalid, zero or negative values are ignored.
*/
package workers
