// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package name

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol/registrar"
	"github.com/namechain/namechain-core/namectl/client"
	actioncmd "github.com/namechain/namechain-core/namectl/cmd/action"
	"github.com/namechain/namechain-core/namectl/flag"
	"github.com/namechain/namechain-core/namectl/output"
)

// Flags
var (
	_secretFlag  = flag.NewStringVar("secret", "", "blind the commitment with this 32-byte hex secret instead of a fresh one")
	_depositFlag = flag.NewStringVar("deposit", "", "escrow this amount instead of the deposit the registrar asks for")
)

// _nameCommitCmd represents the name commit command
var _nameCommitCmd = &cobra.Command{
	Use:   "commit NAME",
	Short: "Escrow the deposit behind a blinded commitment to the name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := commitName(args[0])
		return output.PrintError(err)
	},
}

func init() {
	actioncmd.RegisterWriteCommand(_nameCommitCmd)
	_secretFlag.RegisterCommand(_nameCommitCmd)
	_depositFlag.RegisterCommand(_nameCommitCmd)
}

type commitMessage struct {
	Name       string `json:"name"`
	Owner      string `json:"owner"`
	Secret     string `json:"secret"`
	Commitment string `json:"commitment"`
}

func (m *commitMessage) String() string {
	if output.Format == "" {
		return fmt.Sprintf("name: %s\nowner: %s\nsecret: %s\ncommitment: %s\n%s",
			m.Name, m.Owner, m.Secret, m.Commitment,
			"Keep the secret, the reveal needs it.")
	}
	return output.FormatString(output.Result, m)
}

func commitName(name string) error {
	if name == "" {
		return output.NewError(output.ValidationError, "the name cannot be empty", nil)
	}
	cli := client.Dial()
	dup, err := cli.IsDuplicate(name)
	if err != nil {
		return output.NewError(output.APIError, "failed to check the name", err)
	}
	if dup {
		return output.NewError(output.ValidationError, "the name is already registered", nil)
	}

	secret, err := commitSecret()
	if err != nil {
		return err
	}
	amount, err := depositAmount(cli)
	if err != nil {
		return err
	}
	prvKey, err := actioncmd.PrivateKey()
	if err != nil {
		return err
	}
	owner := prvKey.PublicKey().Address()
	if owner == nil {
		prvKey.Zero()
		return output.NewError(output.ConvertError, "failed to convert public key into address", nil)
	}
	commitment := registrar.Commitment(owner, name, secret)

	chainID, err := actioncmd.ChainID(cli)
	if err != nil {
		prvKey.Zero()
		return err
	}
	nonce, err := actioncmd.Nonce(cli, owner)
	if err != nil {
		prvKey.Zero()
		return err
	}
	gasPrice, err := actioncmd.GasPrice()
	if err != nil {
		prvKey.Zero()
		return err
	}
	selp, err := action.SignedNameCommit(prvKey, nonce, commitment, amount,
		actioncmd.GasLimit(), gasPrice, action.WithChainID(chainID))
	prvKey.Zero()
	if err != nil {
		return output.NewError(output.CryptoError, "failed to sign action", err)
	}

	// print the secret before submitting so a failed wait cannot lose it
	message := commitMessage{
		Name:       name,
		Owner:      owner.String(),
		Secret:     hex.EncodeToString(secret[:]),
		Commitment: hex.EncodeToString(commitment[:]),
	}
	fmt.Println(message.String())
	return actioncmd.Send(cli, selp)
}

// commitSecret parses the secret flag or draws a fresh one
func commitSecret() (hash.Hash256, error) {
	if raw := _secretFlag.Value().(string); raw != "" {
		return parseSecret(raw)
	}
	var secret hash.Hash256
	if _, err := rand.Read(secret[:]); err != nil {
		return hash.ZeroHash256, output.NewError(output.CryptoError, "failed to draw a secret", err)
	}
	return secret, nil
}

// depositAmount parses the deposit flag or asks the registrar for its deposit
func depositAmount(cli *client.Client) (*big.Int, error) {
	raw := _depositFlag.Value().(string)
	if raw == "" {
		registry, err := cli.RegistryMeta()
		if err != nil {
			return nil, output.NewError(output.APIError, "failed to get the registry meta", err)
		}
		raw = registry.Deposit
	}
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok || amount.Sign() < 0 {
		return nil, output.NewError(output.ConvertError, "invalid deposit "+raw, nil)
	}
	return amount, nil
}
