package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/order-accounting/internal/clock"
	"github.com/Gunvolt24/order-accounting/internal/ports"
	"github.com/Gunvolt24/order-accounting/pkg/metrics"
)

var _ ports.RedeliveryTracker = (*SeenOrders)(nil)

type entry struct {
	id        string
	expiresAt time.Time
}

// SeenOrders — LRU-множество недавно записанных order_id с TTL.
// Только наблюдает: повторная доставка всё равно пишется в хранилище.
type SeenOrders struct {
	capacity int
	ttl      time.Duration
	clock    clock.Clock

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewSeenOrders — capacity <= 0 трактуется как 1; ttl <= 0 — без истечения.
func NewSeenOrders(capacity int, ttl time.Duration, clk clock.Clock) *SeenOrders {
	if capacity <= 0 {
		capacity = 1
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &SeenOrders{
		capacity: capacity,
		ttl:      ttl,
		clock:    clk,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Seen — отмечает orderID и возвращает true, если он уже был в окне.
func (c *SeenOrders) Seen(_ context.Context, orderID string) bool {
	if orderID == "" {
		return false
	}
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[orderID]; ok {
		ent := elem.Value.(*entry)
		if !c.isExpired(ent, now) {
			ent.expiresAt = c.expiryFrom(now)
			c.ll.MoveToFront(elem)
			metrics.CacheOps.WithLabelValues("hit").Inc()
			return true
		}
		c.removeElement(elem)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	} else {
		metrics.CacheOps.WithLabelValues("miss").Inc()
	}

	c.pruneExpiredFromBack(now)

	c.index[orderID] = c.ll.PushFront(&entry{id: orderID, expiresAt: c.expiryFrom(now)})
	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.CacheSize.Set(float64(len(c.index)))
	return false
}

// Len — текущее число отслеживаемых id.
func (c *SeenOrders) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *SeenOrders) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

func (c *SeenOrders) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(c.index, ent.id)
	c.ll.Remove(elem)
}

func (c *SeenOrders) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *SeenOrders) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет истёкшие элементы с хвоста до первого актуального.
func (c *SeenOrders) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		if !now.After(back.Value.(*entry).expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}
