// Command hashring routes keys across a static member list and prints the
// resulting assignment, e.g.:
//
//	hashring -members n1=10.0.0.1:6379,n2=10.0.0.2:6379 -replicas 100 user:1 user:2
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"hashring"
	"hashring/hash"
	"hashring/internal/config"
)

func main() {
	members := flag.String("members", "", "comma-separated members in the form id1=addr1,id2=addr2")
	replicas := flag.Int("replicas", hashring.DefaultReplicas, "virtual nodes per member")
	algo := flag.String("hash", string(hash.Murmur3), "digest algorithm: crc32, murmur3, xxhash64")
	flag.Parse()

	parsed, err := config.ParseMembers(*members)
	if err != nil {
		log.Fatalf("invalid -members: %v", err)
	}
	if len(parsed) == 0 {
		log.Fatal("at least one member is required, e.g. -members n1=10.0.0.1:6379")
	}
	if flag.NArg() == 0 {
		log.Fatal("no keys given")
	}

	ring := hashring.New[config.Member](*replicas, hash.Algorithm(*algo))
	for _, m := range parsed {
		ring.AddNode(m)
	}

	counts := make(map[string]int)
	for _, key := range flag.Args() {
		owner, err := ring.GetNode(key)
		if err != nil {
			log.Fatalf("route %q: %v", key, err)
		}
		counts[owner.ID]++
		fmt.Printf("%s\t%s\t%s\n", key, owner.ID, owner.Addr)
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("\n%d members, %d virtual nodes\n", ring.PhysicalNodeCount(), ring.VirtualNodeCount())
	for _, id := range ids {
		fmt.Printf("%s\t%d/%d keys\n", id, counts[id], flag.NArg())
	}
}
