package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard 基于 Redis 的一次性/节流标记。
// 会话本身无状态（JWT），这里只存两类短命 key：
//   - 找回密码令牌的 jti，保证一个令牌只能用一次
//   - 忘记密码请求的 email 节流位
type Guard struct {
	RDB *redis.Client
}

func New(addr, pass string, db int) *Guard {
	return &Guard{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

// ConsumeResetToken 标记 jti 已使用；首次调用返回 true，重复调用返回 false。
// ttl 取令牌剩余有效期即可，过期后 key 自然回收。
func (g *Guard) ConsumeResetToken(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return g.RDB.SetNX(ctx, "reset_jti:"+jti, 1, ttl).Result()
}

// AllowForgotRequest email 维度的窗口节流；窗口内已有请求则返回 false
func (g *Guard) AllowForgotRequest(ctx context.Context, email string, window time.Duration) (bool, error) {
	return g.RDB.SetNX(ctx, "forgot:"+email, 1, window).Result()
}
