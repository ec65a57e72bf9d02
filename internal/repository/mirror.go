package repository

import (
	"context"
	"encoding/json"
	"errors"

	v1 "fraudconfig/pkg/api/v1"

	clientv3 "go.etcd.io/etcd/client/v3"
)

var ErrEntryNotFound = errors.New("mirror entry not found")

type EtcdInterface interface {
	clientv3.KV
	clientv3.Watcher
	Close() error
}

// MirrorRepository stores the decision-engine view of the configuration in
// etcd. Writes are version-guarded so stale outbox retries never clobber a
// newer push.
type MirrorRepository struct {
	client EtcdInterface
}

func NewMirrorRepository(client EtcdInterface) *MirrorRepository {
	return &MirrorRepository{
		client: client,
	}
}

// GetEntry retrieves one mirrored entry by full key.
func (r *MirrorRepository) GetEntry(ctx context.Context, key string) (*v1.MirrorEntry, error) {
	resp, err := r.client.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(resp.Kvs) == 0 {
		return nil, ErrEntryNotFound
	}
	var entry v1.MirrorEntry
	if err := json.Unmarshal(resp.Kvs[0].Value, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveIfNewer writes the entry only if its Version is greater than the one
// already stored, using a CAS transaction on the etcd mod revision.
func (r *MirrorRepository) SaveIfNewer(ctx context.Context, key string, entry v1.MirrorEntry) (int64, error) {
	const maxRetries = 3
	var retries int

	for {
		resp, err := r.client.Get(ctx, key)
		if err != nil {
			return 0, err
		}

		val := entry.ToJSON()

		if len(resp.Kvs) == 0 {
			txn := r.client.Txn(ctx).
				If(clientv3.Compare(clientv3.CreateRevision(key), "=", 0)).
				Then(clientv3.OpPut(key, val))

			tResp, err := txn.Commit()
			if err != nil {
				return 0, err
			}
			if !tResp.Succeeded {
				retries++
				if retries > maxRetries {
					return 0, errors.New("max retries exceeded for SaveIfNewer")
				}
				continue
			}
			return tResp.Header.Revision, nil
		}

		kv := resp.Kvs[0]
		var current v1.MirrorEntry
		if err := json.Unmarshal(kv.Value, &current); err != nil {
			return 0, err
		}
		// Stored version is at least as new: do nothing (idempotent retry).
		if current.Version >= entry.Version {
			return kv.ModRevision, nil
		}

		txn := r.client.Txn(ctx).
			If(clientv3.Compare(clientv3.ModRevision(key), "=", kv.ModRevision)).
			Then(clientv3.OpPut(key, val))

		tResp, err := txn.Commit()
		if err != nil {
			return 0, err
		}
		if tResp.Succeeded {
			return tResp.Header.Revision, nil
		}

		retries++
		if retries > maxRetries {
			return 0, errors.New("max retries exceeded for SaveIfNewer")
		}
	}
}

// DeleteEntry removes a mirrored key, used when an override set is deleted.
func (r *MirrorRepository) DeleteEntry(ctx context.Context, key string) error {
	_, err := r.client.Delete(ctx, key)
	return err
}

// GetWithRevision reads every entry under a prefix with the header revision,
// used by the reconciler for drift detection.
func (r *MirrorRepository) GetWithRevision(ctx context.Context, prefix string) (*clientv3.GetResponse, error) {
	return r.client.Get(ctx, prefix, clientv3.WithPrefix())
}

func (r *MirrorRepository) Health(ctx context.Context) error {
	_, err := r.client.Get(ctx, "health_check")
	return err
}
