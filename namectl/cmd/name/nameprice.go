// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package name

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/output"
)

// _namePriceCmd represents the name price command
var _namePriceCmd = &cobra.Command{
	Use:   "price NAME",
	Short: "Quote what registering the name costs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := namePrice(args[0])
		return output.PrintError(err)
	},
}

type priceMessage struct {
	Name    string `json:"name"`
	Price   string `json:"price"`
	Deposit string `json:"deposit"`
	TopUp   string `json:"topUp"`
}

func (m *priceMessage) String() string {
	if output.Format == "" {
		result := fmt.Sprintf("name: %s\nprice: %s\ndeposit: %s\n", m.Name, m.Price, m.Deposit)
		if m.TopUp != "0" {
			result += fmt.Sprintf("the reveal attaches another %s on top of the deposit\n", m.TopUp)
		}
		return result
	}
	return output.FormatString(output.Result, m)
}

func namePrice(name string) error {
	if name == "" {
		return output.NewError(output.ValidationError, "the name cannot be empty", nil)
	}
	registry, err := client.Dial().RegistryMeta()
	if err != nil {
		return output.NewError(output.APIError, "failed to get the registry meta", err)
	}
	price, err := registrationPrice(name, registry)
	if err != nil {
		return err
	}
	deposit, ok := new(big.Int).SetString(registry.Deposit, 10)
	if !ok {
		return output.NewError(output.ConvertError, "invalid deposit "+registry.Deposit, nil)
	}
	topUp := big.NewInt(0)
	if price.Cmp(deposit) > 0 {
		topUp = new(big.Int).Sub(price, deposit)
	}
	message := priceMessage{
		Name:    name,
		Price:   price.String(),
		Deposit: registry.Deposit,
		TopUp:   topUp.String(),
	}
	fmt.Println(message.String())
	return nil
}
