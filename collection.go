package vectordb

// collection holds one namespace's paired document and vector maps
// plus the explicit insertion-order index driving FIFO eviction.
//
// Invariant: docs and vectors always have identical key sets, and
// order lists exactly those keys, oldest first. All methods must be
// called with the store's write lock held.
type collection struct {
	docs    map[string]*Document
	vectors map[string][]float32
	order   []string
}

func newCollection() *collection {
	return &collection{
		docs:    make(map[string]*Document),
		vectors: make(map[string][]float32),
		order:   make([]string, 0),
	}
}

// insert adds or replaces an entry. Replacing keeps the original
// insertion position.
func (c *collection) insert(doc *Document, vec []float32) {
	if _, exists := c.docs[doc.ID]; !exists {
		c.order = append(c.order, doc.ID)
	}
	c.docs[doc.ID] = doc
	c.vectors[doc.ID] = vec
}

// evictOldest removes the earliest inserted entry from both maps.
// Returns the evicted id, or false if the collection is empty.
func (c *collection) evictOldest() (string, bool) {
	if len(c.order) == 0 {
		return "", false
	}
	id := c.order[0]
	c.order = c.order[1:]
	delete(c.docs, id)
	delete(c.vectors, id)
	return id, true
}

// remove deletes an entry from both maps and the order index.
// Returns false if the id is absent.
func (c *collection) remove(id string) bool {
	if _, exists := c.docs[id]; !exists {
		return false
	}
	delete(c.docs, id)
	delete(c.vectors, id)
	for i, ordered := range c.order {
		if ordered == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection) len() int {
	return len(c.docs)
}
