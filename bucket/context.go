package bucket

// DefaultBlockCapacity is the number of slots per block used by New.
const DefaultBlockCapacity = 64

// sharedContext carries the configuration and the id counter shared by
// every block of one container. Block creation ids and slot insertion
// ids are drawn from the same counter, so iterator ordering can compare
// positions in a single scalar space.
type sharedContext struct {
	blockCapacity int
	nextID        uint64
}

// issueID hands out the next sequence id. Ids are unique per container,
// strictly increasing, and never reused, not even after erasure.
func (c *sharedContext) issueID() uint64 {
	id := c.nextID
	c.nextID++
	return id
}
