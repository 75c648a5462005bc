package sim

import "testing"

func TestServerPool_BusyPlusIdleEqualsTotal(t *testing.T) {
	// GIVEN a pool of 3 servers
	p := NewServerPool(3)

	check := func(step string) {
		if p.BusyCount()+p.IdleCount() != p.Size() {
			t.Fatalf("%s: busy(%d) + idle(%d) != total(%d)", step, p.BusyCount(), p.IdleCount(), p.Size())
		}
	}
	check("initial")

	// WHEN claiming and releasing through a full cycle
	ids := make([]int, 0, 3)
	for i := int64(1); i <= 3; i++ {
		id, ok := p.Claim(i)
		if !ok {
			t.Fatalf("Claim %d: pool exhausted early", i)
		}
		ids = append(ids, id)
		check("after claim")
	}

	// THEN a fourth claim fails without disturbing the invariant
	if _, ok := p.Claim(4); ok {
		t.Error("Claim on full pool: got server, want none")
	}
	check("after failed claim")

	for _, id := range ids {
		p.Release(id)
		check("after release")
	}
	if p.BusyCount() != 0 {
		t.Errorf("BusyCount after releasing all: got %d, want 0", p.BusyCount())
	}
}

func TestServerPool_ClaimIsDeterministic(t *testing.T) {
	// GIVEN a pool with servers 0 and 2 idle
	p := NewServerPool(3)
	p.Claim(1) // takes 0
	p.Claim(2) // takes 1
	p.Claim(3) // takes 2
	p.Release(0)
	p.Release(2)

	// WHEN claiming again
	id, ok := p.Claim(4)

	// THEN the lowest-numbered idle server is chosen
	if !ok || id != 0 {
		t.Errorf("Claim: got server %d (ok=%v), want 0", id, ok)
	}
}

func TestServerPool_BreakLifecycle(t *testing.T) {
	// GIVEN a pool of 2 with server 0 on a post-call break
	p := NewServerPool(2)
	id, _ := p.Claim(1)
	p.Release(id)
	p.RecordCall(id, 4.0)
	p.BeginBreak(id)

	if p.BusyCount()+p.OnBreakCount()+p.IdleCount() != p.Size() {
		t.Fatalf("busy(%d) + break(%d) + idle(%d) != total(%d)",
			p.BusyCount(), p.OnBreakCount(), p.IdleCount(), p.Size())
	}

	// WHEN claiming while the break is in progress
	got, ok := p.Claim(2)

	// THEN the server on break is skipped
	if !ok || got != 1 {
		t.Errorf("Claim during break: got server %d (ok=%v), want 1", got, ok)
	}

	// AND ending the break restores it and accumulates the totals
	p.EndBreak(0, 3.0)
	if p.OnBreakCount() != 0 {
		t.Errorf("OnBreakCount after EndBreak: got %d, want 0", p.OnBreakCount())
	}
	usage := p.Usage()
	if usage[0].CallsHandled != 1 || usage[0].CallTime != 4.0 || usage[0].BreakTime != 3.0 {
		t.Errorf("usage[0] = %+v, want 1 call, 4.0 serving, 3.0 on break", usage[0])
	}
}

func TestServerPool_BeginBreak_BusyServer_Panics(t *testing.T) {
	p := NewServerPool(1)
	p.Claim(1)
	defer func() {
		if recover() == nil {
			t.Error("BeginBreak on busy server did not panic")
		}
	}()
	p.BeginBreak(0)
}

func TestServerPool_Release_IdleServer_Panics(t *testing.T) {
	p := NewServerPool(1)
	defer func() {
		if recover() == nil {
			t.Error("Release of idle server did not panic")
		}
	}()
	p.Release(0)
}
