package wandbox

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// The package tracks every client that currently holds an open transport so
// an application can drain them all at the end of its lifetime with
// [CloseActive]. Registration is scoped to the transport: Connect adds a
// client, Close removes it.
var active = struct {
	sync.Mutex
	clients map[*Client]struct{}
}{clients: make(map[*Client]struct{})}

func register(c *Client) {
	active.Lock()
	defer active.Unlock()
	active.clients[c] = struct{}{}
}

func deregister(c *Client) {
	active.Lock()
	defer active.Unlock()
	delete(active.clients, c)
}

// ActiveClients reports how many clients currently hold an open transport.
func ActiveClients() int {
	active.Lock()
	defer active.Unlock()
	return len(active.clients)
}

// CloseActive closes every client that currently holds an open transport.
// Closures run concurrently and CloseActive returns only after all of them
// have finished; the first error encountered is returned after every
// closure has been attempted. Call it at the end of the owning scope,
// typically right before the process exits:
//
//	defer func() {
//		if err := wandbox.CloseActive(context.Background()); err != nil {
//			log.Fatal(err)
//		}
//	}()
func CloseActive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	active.Lock()
	snapshot := make([]*Client, 0, len(active.clients))
	for c := range active.clients {
		snapshot = append(snapshot, c)
	}
	active.Unlock()

	g, _ := errgroup.WithContext(ctx)
	for _, c := range snapshot {
		g.Go(c.Close)
	}
	return g.Wait()
}
