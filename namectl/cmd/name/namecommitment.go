// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package name

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/action/protocol/registrar"
	actioncmd "github.com/namechain/namechain-core/namectl/cmd/action"
	"github.com/namechain/namechain-core/namectl/output"
)

// _nameCommitmentCmd represents the name commitment command
var _nameCommitmentCmd = &cobra.Command{
	Use:   "commitment NAME",
	Short: "Compute the blinded commitment for a name without submitting anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := nameCommitment(args[0])
		return output.PrintError(err)
	},
}

func init() {
	actioncmd.RegisterKeyCommand(_nameCommitmentCmd)
	_secretFlag.RegisterCommand(_nameCommitmentCmd)
}

func nameCommitment(name string) error {
	if name == "" {
		return output.NewError(output.ValidationError, "the name cannot be empty", nil)
	}
	secret, err := commitSecret()
	if err != nil {
		return err
	}
	prvKey, err := actioncmd.PrivateKey()
	if err != nil {
		return err
	}
	owner := prvKey.PublicKey().Address()
	prvKey.Zero()
	if owner == nil {
		return output.NewError(output.ConvertError, "failed to convert public key into address", nil)
	}
	commitment := registrar.Commitment(owner, name, secret)

	message := commitMessage{
		Name:       name,
		Owner:      owner.String(),
		Secret:     hex.EncodeToString(secret[:]),
		Commitment: hex.EncodeToString(commitment[:]),
	}
	fmt.Println(message.String())
	return nil
}
