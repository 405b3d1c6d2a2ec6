package huffpack

import "container/heap"

type queueItem struct {
	node   int32
	weight uint64
	seq    uint64
}

// nodeQueue is a min-heap ordered by weight, ties broken by insertion order.
type nodeQueue struct {
	items   []queueItem
	nextSeq uint64
}

func newNodeQueue(capacity int) *nodeQueue {
	return &nodeQueue{items: make([]queueItem, 0, capacity)}
}

func (q *nodeQueue) Len() int { return len(q.items) }

func (q *nodeQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.seq < b.seq
}

func (q *nodeQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *nodeQueue) Push(x any) { q.items = append(q.items, x.(queueItem)) }

func (q *nodeQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// push inserts node with the given weight.
func (q *nodeQueue) push(node int32, weight uint64) {
	heap.Push(q, queueItem{node: node, weight: weight, seq: q.nextSeq})
	q.nextSeq++
}

// popMin removes the lightest node. It must not be called on an empty queue.
func (q *nodeQueue) popMin() (int32, uint64) {
	item := heap.Pop(q).(queueItem)
	return item.node, item.weight
}
