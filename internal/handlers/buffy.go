package handlers

import (
	"fmt"
	"math/rand/v2"

	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

// Buffy renders the episode table.
//
//	?cmd=random                one random episode
//	?cmd=season&s=<n>          every episode of season n
//	?cmd=episode&s=<n>&e=<m>   episode m of season n
type Buffy struct {
	episodes []Episode
}

func NewBuffy(episodes []Episode) *Buffy {
	return &Buffy{episodes: episodes}
}

func (b *Buffy) ProcessRequest(ctx *servlet.Context) {
	cmd, ok := ctx.Query("cmd")
	if !ok {
		ctx.BadRequest("missing cmd")
		return
	}

	switch cmd {
	case "random":
		if len(b.episodes) == 0 {
			ctx.BadRequest("no episodes")
			return
		}

		i := rand.IntN(len(b.episodes))
		renderHTML(ctx, episodeTable, b.episodes[i:i+1])
	case "season":
		season, err := ctx.QueryInt("s")
		if err != nil {
			ctx.BadRequest(err.Error())
			return
		}

		var episodes []Episode
		for _, e := range b.episodes {
			if e.Season == season {
				episodes = append(episodes, e)
			}
		}

		renderHTML(ctx, episodeTable, episodes)
	case "episode":
		season, err := ctx.QueryInt("s")
		if err != nil {
			ctx.BadRequest(err.Error())
			return
		}

		number, err := ctx.QueryInt("e")
		if err != nil {
			ctx.BadRequest(err.Error())
			return
		}

		for _, e := range b.episodes {
			if e.Season == season && e.Number == number {
				renderHTML(ctx, episodeTable, []Episode{e})
				return
			}
		}

		ctx.BadRequest(fmt.Sprintf("no episode %d of season %d", number, season))
	default:
		ctx.BadRequest(fmt.Sprintf("unknown cmd %q", cmd))
	}
}
