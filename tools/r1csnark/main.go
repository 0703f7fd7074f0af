package main

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/eon-protocol/r1csnark"
	"github.com/eon-protocol/r1csnark/accumulation"
	"github.com/eon-protocol/r1csnark/circuits"
)

var errRejected = errors.New("rejected")

func main() {
	app := &cli.App{
		Name:  "r1csnark",
		Usage: "prove, verify and accumulate proofs of x·x = y over BLS12-381",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "zerolog level"},
			&cli.StringFlag{Name: "accelerator", Usage: `"icicle" runs MSMs on the GPU`},
			&cli.IntFlag{Name: "nb-tasks", Usage: "goroutines per MSM and mat-vec product, 0 for all CPUs"},
			&cli.StringFlag{Name: "sponge", Value: "poseidon2", Usage: "poseidon2 or mimc"},
		},
		Before: func(c *cli.Context) error {
			lvl, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			logger.Set(logger.Logger().Level(lvl))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "write the index key of the square circuit",
				Action: runIndex,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "square.key"},
				},
			},
			{
				Name:   "prove",
				Usage:  "prove knowledge of y = x·x",
				Action: runProve,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Value: "square.key"},
					&cli.Uint64Flag{Name: "x", Required: true},
					&cli.Uint64Flag{Name: "y", Required: true},
					&cli.BoolFlag{Name: "zk"},
					&cli.StringFlag{Name: "out", Value: "square.proof"},
				},
			},
			{
				Name:   "verify",
				Usage:  "verify a proof for public x",
				Action: runVerify,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Value: "square.key"},
					&cli.Uint64Flag{Name: "x", Required: true},
					&cli.StringFlag{Name: "proof", Value: "square.proof"},
				},
			},
			{
				Name:   "accumulate",
				Usage:  "fold many proofs into one accumulator and decide it",
				Action: runAccumulate,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Value: 16},
					&cli.IntFlag{Name: "depth", Value: 4},
					&cli.BoolFlag{Name: "zk"},
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func newNARK(c *cli.Context) (*r1csnark.BLS12381, error) {
	opts := []r1csnark.Option{
		r1csnark.WithAccelerator(c.String("accelerator")),
		r1csnark.WithNbTasks(c.Int("nb-tasks")),
	}
	switch c.String("sponge") {
	case "poseidon2":
		return r1csnark.NewBLS12381(opts...), nil
	case "mimc":
		return r1csnark.NewBLS12381MiMC(opts...), nil
	default:
		return nil, fmt.Errorf("unknown sponge %q", c.String("sponge"))
	}
}

func indexSquare(nark *r1csnark.BLS12381) (*circuits.Circuit, *r1csnark.IndexProverKey[curve.G1Affine, fr.Element], error) {
	square, err := circuits.Compile(&circuits.Square{})
	if err != nil {
		return nil, nil, err
	}
	pk, _, err := nark.Index(nark.Setup(), square)
	if err != nil {
		return nil, nil, err
	}
	return square, pk, nil
}

func readKey(nark *r1csnark.BLS12381, path string) (*r1csnark.IndexProverKey[curve.G1Affine, fr.Element], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pk, _, err := nark.ReadKey(bufio.NewReader(f))
	return pk, err
}

func writeFile(path string, write func(w *bufio.Writer) (int64, error)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	n, err := write(w)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log := logger.Logger()
	log.Info().Str("path", path).Int64("bytes", n).Msg("written")
	return nil
}

func runIndex(c *cli.Context) error {
	nark, err := newNARK(c)
	if err != nil {
		return err
	}
	_, pk, err := indexSquare(nark)
	if err != nil {
		return err
	}
	return writeFile(c.String("out"), func(w *bufio.Writer) (int64, error) {
		return nark.WriteKey(w, pk)
	})
}

func runProve(c *cli.Context) error {
	nark, err := newNARK(c)
	if err != nil {
		return err
	}
	pk, err := readKey(nark, c.String("key"))
	if err != nil {
		return err
	}
	square, err := circuits.Compile(&circuits.Square{})
	if err != nil {
		return err
	}
	assignment := &circuits.Square{X: c.Uint64("x"), Y: c.Uint64("y")}
	proof, err := nark.Prove(pk, square.WithAssignment(assignment), c.Bool("zk"), rand.Reader, nil)
	if err != nil {
		return err
	}
	return writeFile(c.String("out"), func(w *bufio.Writer) (int64, error) {
		return nark.WriteProof(w, proof)
	})
}

func runVerify(c *cli.Context) error {
	nark, err := newNARK(c)
	if err != nil {
		return err
	}
	vk, err := readKey(nark, c.String("key"))
	if err != nil {
		return err
	}
	f, err := os.Open(c.String("proof"))
	if err != nil {
		return err
	}
	defer f.Close()
	proof, _, err := nark.ReadProof(bufio.NewReader(f))
	if err != nil {
		return err
	}
	input, err := circuits.PublicInput(&circuits.Square{X: c.Uint64("x"), Y: 0})
	if err != nil {
		return err
	}
	if !nark.Verify(vk, input, proof, nil) {
		return errRejected
	}
	fmt.Println("valid")
	return nil
}

func runAccumulate(c *cli.Context) error {
	nark, err := newNARK(c)
	if err != nil {
		return err
	}
	square, index, err := indexSquare(nark)
	if err != nil {
		return err
	}
	scheme := accumulation.New(nark)
	pp, err := scheme.Setup(rand.Reader)
	if err != nil {
		return err
	}
	pk, vk, dk, err := scheme.Index(pp, accumulation.PredicateParams{Depth: c.Int("depth")}, index)
	if err != nil {
		return err
	}
	zk := accumulation.NoZK
	if c.Bool("zk") {
		zk = accumulation.ZK(rand.Reader)
	}

	count := c.Int("count")
	inputs := make([]accumulation.Input[curve.G1Affine, fr.Element], 0, count)
	bar := progressbar.Default(int64(count), "proving")
	for i := 0; i < count; i++ {
		x := uint64(i + 2)
		assignment := &circuits.Square{X: x, Y: x * x}
		proof, err := nark.Prove(index, square.WithAssignment(assignment), c.Bool("zk"), rand.Reader, nil)
		if err != nil {
			return err
		}
		input, err := circuits.PublicInput(assignment)
		if err != nil {
			return err
		}
		inputs = append(inputs, accumulation.NewInput(input, proof))
		_ = bar.Add(1)
	}

	var old []accumulation.Accumulator[curve.G1Affine, fr.Element]
	bar = progressbar.Default(int64(count), "accumulating")
	for start := 0; start < count; start += pk.Depth {
		batch := inputs[start:min(start+pk.Depth, count)]
		acc, proof, err := scheme.Prove(pk, batch, old, zk, nil)
		if err != nil {
			return err
		}
		instances := make([]accumulation.InputInstance[curve.G1Affine, fr.Element], len(batch))
		for i := range batch {
			instances[i] = batch[i].Instance
		}
		oldInstances := make([]accumulation.AccumulatorInstance[curve.G1Affine, fr.Element], len(old))
		for i := range old {
			oldInstances[i] = old[i].Instance
		}
		if !scheme.Verify(vk, instances, oldInstances, &acc.Instance, proof, nil) {
			return fmt.Errorf("accumulation step %d: %w", start/pk.Depth, errRejected)
		}
		old = []accumulation.Accumulator[curve.G1Affine, fr.Element]{*acc}
		_ = bar.Add(len(batch))
	}

	if len(old) == 0 || !scheme.Decide(dk, &old[0]) {
		return fmt.Errorf("decider: %w", errRejected)
	}
	fmt.Printf("%d proofs accumulated and decided\n", count)
	return nil
}
