package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/forgo/signup/api/internal/model"
	"github.com/redis/go-redis/v9"
)

// Key layout under the configured prefix:
//
//	<prefix>activities        LIST  activity names in catalog order
//	<prefix>activity:<name>   HASH  name, description, schedule, max_participants
//	<prefix>roster:<name>     LIST  participant emails in sign-up order
const (
	redisNamesKey    = "activities"
	redisActivityKey = "activity:"
	redisRosterKey   = "roster:"
)

// Scripts return -1 when the activity hash is missing.
var (
	signupScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
local members = redis.call('LRANGE', KEYS[2], 0, -1)
for _, m in ipairs(members) do
	if m == ARGV[1] then
		return 0
	end
end
redis.call('RPUSH', KEYS[2], ARGV[1])
return 1
`)

	unregisterScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('LREM', KEYS[2], 1, ARGV[1])
`)
)

// RedisDirectory stores the directory in Redis so several API replicas
// share one set of rosters.
type RedisDirectory struct {
	client *redis.Client
	prefix string
}

// NewRedisDirectory creates a Redis-backed directory
func NewRedisDirectory(client *redis.Client, prefix string) *RedisDirectory {
	return &RedisDirectory{client: client, prefix: prefix}
}

func (r *RedisDirectory) namesKey() string {
	return r.prefix + redisNamesKey
}

func (r *RedisDirectory) activityKey(name string) string {
	return r.prefix + redisActivityKey + name
}

func (r *RedisDirectory) rosterKey(name string) string {
	return r.prefix + redisRosterKey + name
}

// Seed replaces every activity and roster under the prefix
func (r *RedisDirectory) Seed(ctx context.Context, d model.Directory) error {
	existing, err := r.client.LRange(ctx, r.namesKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("read existing activities: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		stale := []string{r.namesKey()}
		for _, name := range existing {
			stale = append(stale, r.activityKey(name), r.rosterKey(name))
		}
		pipe.Del(ctx, stale...)

		for _, a := range d {
			pipe.RPush(ctx, r.namesKey(), a.Name)
			pipe.HSet(ctx, r.activityKey(a.Name),
				"name", a.Name,
				"description", a.Description,
				"schedule", a.Schedule,
				"max_participants", a.MaxParticipants,
			)
			pipe.Del(ctx, r.rosterKey(a.Name))
			if len(a.Participants) > 0 {
				members := make([]interface{}, len(a.Participants))
				for i, p := range a.Participants {
					members[i] = p
				}
				pipe.RPush(ctx, r.rosterKey(a.Name), members...)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}
	return nil
}

// List returns every activity in catalog order
func (r *RedisDirectory) List(ctx context.Context) (model.Directory, error) {
	names, err := r.client.LRange(ctx, r.namesKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	type pending struct {
		meta   *redis.MapStringStringCmd
		roster *redis.StringSliceCmd
	}
	cmds := make([]pending, len(names))

	pipe := r.client.Pipeline()
	for i, name := range names {
		cmds[i] = pending{
			meta:   pipe.HGetAll(ctx, r.activityKey(name)),
			roster: pipe.LRange(ctx, r.rosterKey(name), 0, -1),
		}
	}
	if len(names) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("load activities: %w", err)
		}
	}

	out := make(model.Directory, 0, len(names))
	for i, name := range names {
		meta := cmds[i].meta.Val()
		if len(meta) == 0 {
			continue
		}
		out = append(out, activityFromHash(name, meta, cmds[i].roster.Val()))
	}
	return out, nil
}

// Get returns one activity, or nil if it does not exist
func (r *RedisDirectory) Get(ctx context.Context, name string) (*model.Activity, error) {
	pipe := r.client.Pipeline()
	metaCmd := pipe.HGetAll(ctx, r.activityKey(name))
	rosterCmd := pipe.LRange(ctx, r.rosterKey(name), 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}

	meta := metaCmd.Val()
	if len(meta) == 0 {
		return nil, nil
	}
	a := activityFromHash(name, meta, rosterCmd.Val())
	return &a, nil
}

// AddParticipant appends email to the roster atomically
func (r *RedisDirectory) AddParticipant(ctx context.Context, activity, email string) error {
	res, err := signupScript.Run(ctx, r.client,
		[]string{r.activityKey(activity), r.rosterKey(activity)}, email).Int()
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}

	switch res {
	case -1:
		return ErrActivityNotFound
	case 0:
		return ErrParticipantExists
	}
	return nil
}

// RemoveParticipant removes email from the roster atomically
func (r *RedisDirectory) RemoveParticipant(ctx context.Context, activity, email string) error {
	res, err := unregisterScript.Run(ctx, r.client,
		[]string{r.activityKey(activity), r.rosterKey(activity)}, email).Int()
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}

	switch res {
	case -1:
		return ErrActivityNotFound
	case 0:
		return ErrParticipantNotFound
	}
	return nil
}

// Ping checks the Redis connection
func (r *RedisDirectory) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func activityFromHash(name string, meta map[string]string, roster []string) model.Activity {
	maxParticipants, _ := strconv.Atoi(meta["max_participants"])
	if roster == nil {
		roster = []string{}
	}
	return model.Activity{
		Name:            name,
		Description:     meta["description"],
		Schedule:        meta["schedule"],
		MaxParticipants: maxParticipants,
		Participants:    roster,
	}
}
