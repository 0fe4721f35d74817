package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/happyhood/api"
	"github.com/etnz/happyhood/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

// serveCmd implements the "serve" command.
type serveCmd struct {
	addr    string
	origins string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the hoods API over HTTP" }
func (*serveCmd) Usage() string {
	return `happyhood serve [-addr <addr>] [-allow-origins <origins>]

  Serves hoods, houses, valuations and differences as JSON, until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on")
	f.StringVar(&c.origins, "allow-origins", "", "Comma separated origins allowed to call the API from a browser")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	s, err := OpenStore()
	if err != nil {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	defer s.Close()

	server := &http.Server{Addr: c.addr, Handler: c.engine(s)}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdown)
	}()

	log.Printf("serving on %s", c.addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fail(subcommands.ExitFailure, "%v", err)
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) engine(s *store.Store) *gin.Engine {
	r := gin.Default()
	if c.origins != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  strings.Split(c.origins, ","),
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
	api.RegisterRoutes(r, s, currency())
	return r
}
