// Command slhdsa is a small harness around package slhdsa: list the
// registered parameter sets, generate a key pair, and sign or verify a
// file under one.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/go-slhdsa/slhdsa"
	"github.com/go-slhdsa/slhdsa/internal/keyfile"
)

// cryptoRand adapts crypto/rand.Read to slhdsa.RandBytes.
func cryptoRand(out []byte) error {
	_, err := rand.Read(out)
	return err
}

func cmdAlgs(c *cli.Context) error {
	for _, name := range slhdsa.AllParameterSetNames() {
		fmt.Println(name)
	}
	return nil
}

func cmdKeygen(c *cli.Context) error {
	p, perr := slhdsa.ParamsFromName2(c.String("alg"))
	if perr != nil {
		return perr
	}
	path := c.Args().First()
	if path == "" {
		return cli.Exit("keygen requires a key file path", 1)
	}

	pk, sk, err := slhdsa.Keygen(p, cryptoRand)
	if err != nil {
		return err
	}

	ctr, cerr := keyfile.Create(path, p, sk)
	if cerr != nil {
		return cerr
	}
	defer ctr.Close()

	fmt.Printf("wrote %s key to %s\n", p.Name, path)
	fmt.Printf("public key: %s\n", hex.EncodeToString(pk))
	return nil
}

func cmdSign(c *cli.Context) error {
	path := c.Args().Get(0)
	msgPath := c.Args().Get(1)
	if path == "" || msgPath == "" {
		return cli.Exit("sign requires a key file and a message file", 1)
	}

	ctr, p, sk, err := keyfile.Open(path)
	if err != nil {
		return err
	}
	defer ctr.Close()

	m, rerr := os.ReadFile(msgPath)
	if rerr != nil {
		return cli.Exit(rerr, 1)
	}

	sig, serr := slhdsa.Sign(p, sk, m, c.Bool("deterministic"), cryptoRand)
	if serr != nil {
		return serr
	}
	fmt.Println(hex.EncodeToString(sig))
	return nil
}

func cmdVerify(c *cli.Context) error {
	alg := c.String("alg")
	pkHex := c.Args().Get(0)
	msgPath := c.Args().Get(1)
	sigHex := c.Args().Get(2)
	if alg == "" || pkHex == "" || msgPath == "" || sigHex == "" {
		return cli.Exit("verify requires --alg, a public key, a message file and a signature", 1)
	}

	p, perr := slhdsa.ParamsFromName2(alg)
	if perr != nil {
		return perr
	}
	pk, herr := hex.DecodeString(pkHex)
	if herr != nil {
		return cli.Exit(herr, 1)
	}
	sig, herr := hex.DecodeString(sigHex)
	if herr != nil {
		return cli.Exit(herr, 1)
	}
	m, rerr := os.ReadFile(msgPath)
	if rerr != nil {
		return cli.Exit(rerr, 1)
	}

	ok, verr := slhdsa.Verify(p, pk, m, sig)
	if verr != nil {
		return verr
	}
	if !ok {
		return cli.Exit("signature does not verify", 1)
	}
	fmt.Println("OK")
	return nil
}

func main() {
	app := &cli.App{
		Name:  "slhdsa",
		Usage: "generate, sign and verify SLH-DSA keys",
		Commands: []*cli.Command{
			{
				Name:   "algs",
				Usage:  "list the registered SLH-DSA parameter sets",
				Action: cmdAlgs,
			},
			{
				Name:      "keygen",
				Usage:     "generate a new key pair",
				ArgsUsage: "<key-file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "alg", Value: "SLH-DSA-SHAKE-128s", Usage: "parameter set name"},
				},
				Action: cmdKeygen,
			},
			{
				Name:      "sign",
				Usage:     "sign a file with a key written by keygen",
				ArgsUsage: "<key-file> <message-file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "deterministic", Usage: "omit the random per-signature seed"},
				},
				Action: cmdSign,
			},
			{
				Name:      "verify",
				Usage:     "verify a hex-encoded signature",
				ArgsUsage: "<public-key-hex> <message-file> <signature-hex>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "alg", Usage: "parameter set name"},
				},
				Action: cmdVerify,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
