package chain

import (
	"fmt"

	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	"github.com/elys-network/zll/internal/host"
)

var (
	contractInfoPrefix    = []byte("contract_info/")
	contractStoragePrefix = []byte("contract_storage/")
	instanceSeqKey        = []byte("instance_seq")
)

// ContractInfo is the registry record of an instantiated contract.
type ContractInfo struct {
	CodeID  uint64 `json:"code_id"`
	Creator string `json:"creator"`
	Label   string `json:"label"`
	Height  uint64 `json:"created_at"`
}

func contractInfos(store storetypes.KVStore) storetypes.KVStore {
	return prefix.NewStore(store, contractInfoPrefix)
}

// contractStorage is the namespace a contract reads and writes through Deps.
func contractStorage(store storetypes.KVStore, addr string) storetypes.KVStore {
	return prefix.NewStore(store, append(append([]byte{}, contractStoragePrefix...), []byte(addr+"/")...))
}

var instanceSeq = host.NewItem[uint64](string(instanceSeqKey))

// nextInstanceSeq bumps the global instance counter inside store, so an
// aborted instantiation releases its sequence number.
func nextInstanceSeq(store storetypes.KVStore) (uint64, error) {
	seq, err := instanceSeq.MayLoad(store)
	if err != nil {
		return 0, err
	}
	next := uint64(1)
	if seq != nil {
		next = *seq + 1
	}
	return next, instanceSeq.Save(store, next)
}

func loadContractInfo(store storetypes.KVStore, addr string) (ContractInfo, error) {
	info, err := host.NewItem[ContractInfo](addr).MayLoad(contractInfos(store))
	if err != nil {
		return ContractInfo{}, err
	}
	if info == nil {
		return ContractInfo{}, ErrNoSuchContract.Wrap(addr)
	}
	return *info, nil
}

func saveContractInfo(store storetypes.KVStore, addr string, info ContractInfo) error {
	return host.NewItem[ContractInfo](addr).Save(contractInfos(store), info)
}

func contractLabel(codeID, seq uint64) string {
	return fmt.Sprintf("contract/%d/%d", codeID, seq)
}
