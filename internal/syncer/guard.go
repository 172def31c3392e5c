package syncer

// BlockReason says why a push was refused. Guardrail blocks are deliberate
// skips, not errors; they surface only in diagnostics.
type BlockReason string

const (
	// BlockFreshClient: this client has never completed a pull for the
	// partition. Pull-before-push keeps a first-run client from stomping
	// existing remote data with seed content.
	BlockFreshClient BlockReason = "fresh-client"

	// BlockEmptyNamespace: the remote partition is empty and the caller did
	// not explicitly opt into bootstrapping it.
	BlockEmptyNamespace BlockReason = "empty-namespace"

	// BlockAntiClobber: the local set is suspiciously small next to the
	// remote one (below 80%), e.g. a wiped profile about to overwrite a
	// populated partition.
	BlockAntiClobber BlockReason = "anti-clobber"
)

// PushCheck carries the pre-merge facts the guardrail decides on.
type PushCheck struct {
	PulledOnce     bool
	LocalCount     int
	RemoteCount    int
	AllowBootstrap bool
}

// BlockPush decides whether writing local changes back to the remote store
// is safe. First matching rule wins; ("", false) means the push may proceed.
// Pure: no storage, no network.
func BlockPush(c PushCheck) (BlockReason, bool) {
	if !c.PulledOnce {
		return BlockFreshClient, true
	}
	if c.RemoteCount == 0 && !c.AllowBootstrap {
		return BlockEmptyNamespace, true
	}
	// local < 0.8 * remote, kept in integer arithmetic.
	if c.RemoteCount > 0 && c.LocalCount*5 < c.RemoteCount*4 {
		return BlockAntiClobber, true
	}
	return "", false
}
