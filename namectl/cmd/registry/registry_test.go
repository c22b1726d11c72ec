// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/util"
)

func TestRegistryInfoCommand(t *testing.T) {
	require := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal("/v1/registry", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(json.NewEncoder(w).Encode(&client.RegistryMeta{
			Deposit: "100", LockTime: 10, RevealSpan: 32, NameCost: "5",
			Entries: 2, TotalFees: "40",
		}))
	}))
	defer srv.Close()
	client.Endpoint = srv.URL

	_, err := util.ExecuteCmd(_registryInfoCmd)
	require.NoError(err)
}

func TestRegistryListCommand(t *testing.T) {
	require := require.New(t)
	var gotOffset, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal("/v1/registry/names", r.URL.Path)
		gotOffset = r.URL.Query().Get("offset")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		require.NoError(json.NewEncoder(w).Encode(&client.RegistryEntries{
			Total: 2,
			Entries: []*client.RegistryEntry{
				{Index: 0, Name: "alice", Owner: "owner0"},
				{Index: 1, Name: "bob", Owner: "owner1"},
			},
		}))
	}))
	defer srv.Close()
	client.Endpoint = srv.URL

	_, err := util.ExecuteCmd(_registryListCmd)
	require.NoError(err)
	require.Equal("0", gotOffset)
	require.Equal("20", gotLimit)

	_, err = util.ExecuteCmd(_registryListCmd, "5", "7")
	require.NoError(err)
	require.Equal("5", gotOffset)
	require.Equal("7", gotLimit)

	_, err = util.ExecuteCmd(_registryListCmd, "not-a-number")
	require.Error(err)
	require.Contains(err.Error(), "failed to convert offset")
}

func TestRegistryCheckCommand(t *testing.T) {
	require := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal("/v1/registry/duplicate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(json.NewEncoder(w).Encode(map[string]interface{}{
			"name":      r.URL.Query().Get("name"),
			"duplicate": r.URL.Query().Get("name") == "taken",
		}))
	}))
	defer srv.Close()
	client.Endpoint = srv.URL

	_, err := util.ExecuteCmd(_registryCheckCmd, "open")
	require.NoError(err)
	_, err = util.ExecuteCmd(_registryCheckCmd, "taken")
	require.NoError(err)
	_, err = util.ExecuteCmd(_registryCheckCmd, "")
	require.Error(err)
	require.Contains(err.Error(), "cannot be empty")
}
