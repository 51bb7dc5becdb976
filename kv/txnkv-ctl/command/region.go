package command

import (
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/talent-plan/txnkv/kv/server/api"
)

const regionsPrefix = "/api/v1/regions"

// NewRegionCommand returns the region subcommand of the root command.
func NewRegionCommand() *cobra.Command {
	r := &cobra.Command{
		Use:   "region [region_id]",
		Short: "show the regions of the store, or one region",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showRegionCommandFunc,
	}
	split := &cobra.Command{
		Use:   "split <region_id> <split_key>",
		Short: "split a region at a key",
		Args:  cobra.ExactArgs(2),
		RunE:  splitRegionCommandFunc,
	}
	split.Flags().Bool("hex", false, "the split key is hex encoded")
	r.AddCommand(split)
	r.AddCommand(&cobra.Command{
		Use:   "transfer-leader <region_id> <peer_id>",
		Short: "make a peer the leader of a region",
		Args:  cobra.ExactArgs(2),
		RunE:  transferLeaderCommandFunc,
	})
	addPeer := &cobra.Command{
		Use:   "add-peer <region_id> <store_id>",
		Short: "add a peer on a store to a region",
		Args:  cobra.ExactArgs(2),
		RunE:  addPeerCommandFunc,
	}
	addPeer.Flags().Uint64("peer-id", 0, "id of the new peer, allocated when 0")
	r.AddCommand(addPeer)
	r.AddCommand(&cobra.Command{
		Use:   "remove-peer <region_id> <peer_id>",
		Short: "remove a peer from a region",
		Args:  cobra.ExactArgs(2),
		RunE:  removePeerCommandFunc,
	})
	return r
}

// NewStoreCommand returns the store subcommand of the root command.
func NewStoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "store",
		Short: "show store status and usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return httpCommand(cmd, http.MethodGet, "/api/v1/store", nil)
		},
	}
}

// NewLogCommand returns the log subcommand of the root command.
func NewLogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "log <level>",
		Short: "set the log level of the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return httpCommand(cmd, http.MethodPost, "/api/v1/log", args[0])
		},
	}
}

// httpCommand calls the status API and prints the JSON answer.
func httpCommand(cmd *cobra.Command, method, path string, body interface{}) error {
	c := newStatusClient(cmd)
	var out interface{}
	if err := c.doHTTP(method, path, body, &out); err != nil {
		return err
	}
	return printResult(cmd, out)
}

func regionPath(id string, suffix string) (string, error) {
	regionID, err := parseUint64(id)
	if err != nil {
		return "", errors.Errorf("invalid region id %q", id)
	}
	return fmt.Sprintf("%s/%d%s", regionsPrefix, regionID, suffix), nil
}

func showRegionCommandFunc(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return httpCommand(cmd, http.MethodGet, regionsPrefix, nil)
	}
	path, err := regionPath(args[0], "")
	if err != nil {
		return err
	}
	return httpCommand(cmd, http.MethodGet, path, nil)
}

func splitRegionCommandFunc(cmd *cobra.Command, args []string) error {
	path, err := regionPath(args[0], "/split")
	if err != nil {
		return err
	}
	key := args[1]
	if isHex, _ := cmd.Flags().GetBool("hex"); !isHex {
		key = hex.EncodeToString([]byte(key))
	}
	return httpCommand(cmd, http.MethodPost, path, &api.SplitInput{SplitKey: key})
}

func transferLeaderCommandFunc(cmd *cobra.Command, args []string) error {
	path, err := regionPath(args[0], "/transfer-leader")
	if err != nil {
		return err
	}
	peerID, err := parseUint64(args[1])
	if err != nil {
		return errors.Errorf("invalid peer id %q", args[1])
	}
	return httpCommand(cmd, http.MethodPost, path, &api.PeerInput{PeerID: peerID})
}

func addPeerCommandFunc(cmd *cobra.Command, args []string) error {
	path, err := regionPath(args[0], "/peers")
	if err != nil {
		return err
	}
	storeID, err := parseUint64(args[1])
	if err != nil {
		return errors.Errorf("invalid store id %q", args[1])
	}
	peerID, _ := cmd.Flags().GetUint64("peer-id")
	return httpCommand(cmd, http.MethodPost, path, &api.PeerInput{PeerID: peerID, StoreID: storeID})
}

func removePeerCommandFunc(cmd *cobra.Command, args []string) error {
	peerID, err := parseUint64(args[1])
	if err != nil {
		return errors.Errorf("invalid peer id %q", args[1])
	}
	path, err := regionPath(args[0], fmt.Sprintf("/peers/%d", peerID))
	if err != nil {
		return err
	}
	return httpCommand(cmd, http.MethodDelete, path, nil)
}
