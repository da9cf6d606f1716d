package larch_test

import (
	"fmt"

	"github.com/larchdi/larch"
)

// Types used in examples only.
type Logger struct{ Prefix string }
type Config struct{ DSN string }
type Database struct {
	Config *Config
	Logger *Logger
}

type Greeter interface {
	Greet() string
}
type englishGreeter struct{}

func (g *englishGreeter) Greet() string { return "hello" }

type Timeouts struct{ Seconds int }
type Server struct {
	Logger   *Logger
	Timeouts Timeouts
}

func ExampleNew() {
	c := larch.New()

	_ = c.RegisterSingleton(func() *Logger { return &Logger{Prefix: "app"} })

	logger, _ := larch.Resolve[*Logger](c)
	fmt.Println(logger.Prefix)
	// Output: app
}

func ExampleContainer_RegisterTransient() {
	c := larch.New()
	_ = c.RegisterTransient(func() *Logger { return &Logger{Prefix: "app"} })

	l1, _ := larch.Resolve[*Logger](c)
	l2, _ := larch.Resolve[*Logger](c)
	fmt.Println(l1 == l2)
	// Output: false
}

func ExampleAsContract() {
	c := larch.New()
	_ = c.RegisterInstance(&englishGreeter{}, larch.AsContract((*Greeter)(nil)))

	g, _ := larch.Resolve[Greeter](c)
	fmt.Println(g.Greet())
	// Output: hello
}

func ExampleWithDefaults() {
	c := larch.New()
	_ = c.RegisterSingleton(func() *Logger { return &Logger{Prefix: "app"} })

	// Timeouts has no registration; the declared default fills in.
	_ = c.RegisterTransient(
		func(l *Logger, t Timeouts) *Server { return &Server{Logger: l, Timeouts: t} },
		larch.WithDefaults(Timeouts{Seconds: 30}),
	)

	srv, _ := larch.Resolve[*Server](c)
	fmt.Println(srv.Timeouts.Seconds)
	// Output: 30
}

func ExampleContainer_Validate() {
	c := larch.New()
	_ = c.RegisterSingleton(func(cfg *Config, l *Logger) *Database {
		return &Database{Config: cfg, Logger: l}
	})

	err := c.Validate()
	fmt.Println(err != nil)
	// Output: true
}
