package domain

// Identity is the current viewer's authentication state. The zero value is a
// guest. An identity the auth provider has not resolved yet is treated as a
// guest for storage purposes; callers re-run reconciliation once it resolves.
type Identity struct {
	UserID string
}

func Guest() Identity {
	return Identity{}
}

func User(id string) Identity {
	return Identity{UserID: id}
}

func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// PartitionKey derives the local storage slot for one collection and this
// identity. Switching identities never reads another identity's partition,
// except for the one-time guest merge at login.
func (i Identity) PartitionKey(collection string) string {
	if !i.Authenticated() {
		return "webmall:" + collection + ":guest"
	}
	return "webmall:" + collection + ":user:" + i.UserID
}
