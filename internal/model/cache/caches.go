package cache

import (
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/tonedrill/backend/internal/model"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	UserByID *cache.Set[model.User]

	// UserStatsByUserID caches assembled dashboard responses, keyed
	// "userId|range". Flushed whenever the worker ingests an attempt for
	// the user.
	UserStatsByUserID *cache.Set[types.UserStats]

	// Drills is the static drill catalog; it only changes on deploy.
	Drills *cache.Singular[[]types.Drill]

	once sync.Once

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		cache.Populate(client)
		initializeCaches()
	})
}

func initializeCaches() {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// user
	UserByID = cache.NewSet[model.User]("user#userId")

	SetMap["user#userId"] = UserByID.Flush

	// stats
	UserStatsByUserID = cache.NewSet[types.UserStats]("userStats#userId|range")

	SetMap["userStats#userId|range"] = UserStatsByUserID.Flush

	// drill catalog
	Drills = cache.NewSingular[[]types.Drill]("drills")

	SingularFlusherMap["drills"] = Drills.Delete
}
