// Package hashring implements a consistent hashing ring with virtual nodes.
// It maps arbitrary string keys to members of a dynamic node set while
// minimizing key movement when membership changes, and supports live
// reconfiguration of the replica count and digest algorithm via a full
// ring rebuild.
package hashring
