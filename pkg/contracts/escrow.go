package contracts

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

// EscrowABI is the ABI of the Escrow contract
const EscrowABI = `[
	{
		"inputs": [
			{
				"internalType": "bytes32",
				"name": "intentId",
				"type": "bytes32"
			},
			{
				"internalType": "uint256",
				"name": "amount",
				"type": "uint256"
			}
		],
		"name": "lock",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{
				"internalType": "bytes32",
				"name": "intentId",
				"type": "bytes32"
			},
			{
				"internalType": "address",
				"name": "recipient",
				"type": "address"
			}
		],
		"name": "claim",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{
				"internalType": "bytes32",
				"name": "intentId",
				"type": "bytes32"
			}
		],
		"name": "refund",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{
				"internalType": "bytes32",
				"name": "",
				"type": "bytes32"
			}
		],
		"name": "intents",
		"outputs": [
			{
				"internalType": "address",
				"name": "sender",
				"type": "address"
			},
			{
				"internalType": "uint256",
				"name": "amount",
				"type": "uint256"
			},
			{
				"internalType": "bool",
				"name": "claimed",
				"type": "bool"
			}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "token",
		"outputs": [
			{
				"internalType": "contract IERC20",
				"name": "",
				"type": "address"
			}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{
				"indexed": true,
				"internalType": "bytes32",
				"name": "intentId",
				"type": "bytes32"
			},
			{
				"indexed": true,
				"internalType": "address",
				"name": "sender",
				"type": "address"
			},
			{
				"indexed": false,
				"internalType": "uint256",
				"name": "amount",
				"type": "uint256"
			}
		],
		"name": "IntentLocked",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{
				"indexed": true,
				"internalType": "bytes32",
				"name": "intentId",
				"type": "bytes32"
			},
			{
				"indexed": true,
				"internalType": "address",
				"name": "recipient",
				"type": "address"
			}
		],
		"name": "IntentClaimed",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{
				"indexed": true,
				"internalType": "bytes32",
				"name": "intentId",
				"type": "bytes32"
			}
		],
		"name": "IntentRefunded",
		"type": "event"
	}
]`

// Escrow is an auto generated Go binding around an Ethereum contract.
type Escrow struct {
	EscrowCaller     // Read-only binding to the contract
	EscrowTransactor // Write-only binding to the contract
	EscrowFilterer   // Log filterer for contract events
}

// EscrowCaller is an auto generated read-only Go binding around an Ethereum contract.
type EscrowCaller struct {
	contract *bind.BoundContract // Generic contract wrapper for the low level calls
}

// EscrowTransactor is an auto generated write-only Go binding around an Ethereum contract.
type EscrowTransactor struct {
	contract *bind.BoundContract // Generic contract wrapper for the low level calls
}

// EscrowFilterer is an auto generated log filtering Go binding around an Ethereum contract events.
type EscrowFilterer struct {
	contract *bind.BoundContract // Generic contract wrapper for the low level calls
}

// EscrowSession is an auto generated Go binding around an Ethereum contract,
// with pre-set call and transact options.
type EscrowSession struct {
	Contract     *Escrow           // Generic contract binding to set the session for
	CallOpts     bind.CallOpts     // Call options to use throughout this session
	TransactOpts bind.TransactOpts // Transaction auth options to use throughout this session
}

// NewEscrow creates a new instance of Escrow, bound to a specific deployed contract.
func NewEscrow(address common.Address, backend bind.ContractBackend) (*Escrow, error) {
	contract, err := bindEscrow(address, backend, backend, backend)
	if err != nil {
		return nil, err
	}
	return &Escrow{EscrowCaller: EscrowCaller{contract: contract}, EscrowTransactor: EscrowTransactor{contract: contract}, EscrowFilterer: EscrowFilterer{contract: contract}}, nil
}

// NewEscrowCaller creates a new read-only instance of Escrow, bound to a specific deployed contract.
func NewEscrowCaller(address common.Address, caller bind.ContractCaller) (*EscrowCaller, error) {
	contract, err := bindEscrow(address, caller, nil, nil)
	if err != nil {
		return nil, err
	}
	return &EscrowCaller{contract: contract}, nil
}

// NewEscrowTransactor creates a new write-only instance of Escrow, bound to a specific deployed contract.
func NewEscrowTransactor(address common.Address, transactor bind.ContractTransactor) (*EscrowTransactor, error) {
	contract, err := bindEscrow(address, nil, transactor, nil)
	if err != nil {
		return nil, err
	}
	return &EscrowTransactor{contract: contract}, nil
}

// NewEscrowFilterer creates a new log filterer instance of Escrow, bound to a specific deployed contract.
func NewEscrowFilterer(address common.Address, filterer bind.ContractFilterer) (*EscrowFilterer, error) {
	contract, err := bindEscrow(address, nil, nil, filterer)
	if err != nil {
		return nil, err
	}
	return &EscrowFilterer{contract: contract}, nil
}

// bindEscrow binds a generic wrapper to an already deployed contract.
func bindEscrow(address common.Address, caller bind.ContractCaller, transactor bind.ContractTransactor, filterer bind.ContractFilterer) (*bind.BoundContract, error) {
	parsed, err := abi.JSON(strings.NewReader(EscrowABI))
	if err != nil {
		return nil, err
	}
	return bind.NewBoundContract(address, parsed, caller, transactor, filterer), nil
}

// Intents is a free data retrieval call binding the contract method 0x2cf52868.
//
// Solidity: function intents(bytes32 ) view returns(address sender, uint256 amount, bool claimed)
func (_Escrow *EscrowCaller) Intents(opts *bind.CallOpts, arg0 [32]byte) (struct {
	Sender  common.Address
	Amount  *big.Int
	Claimed bool
}, error) {
	var out []interface{}
	err := _Escrow.contract.Call(opts, &out, "intents", arg0)

	outstruct := new(struct {
		Sender  common.Address
		Amount  *big.Int
		Claimed bool
	})
	if err != nil {
		return *outstruct, err
	}

	outstruct.Sender = *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	outstruct.Amount = *abi.ConvertType(out[1], new(*big.Int)).(**big.Int)
	outstruct.Claimed = *abi.ConvertType(out[2], new(bool)).(*bool)

	return *outstruct, err
}

// Intents is a free data retrieval call binding the contract method 0x2cf52868.
//
// Solidity: function intents(bytes32 ) view returns(address sender, uint256 amount, bool claimed)
func (_Escrow *EscrowSession) Intents(arg0 [32]byte) (struct {
	Sender  common.Address
	Amount  *big.Int
	Claimed bool
}, error) {
	return _Escrow.Contract.Intents(&_Escrow.CallOpts, arg0)
}

// Token is a free data retrieval call binding the contract method 0xfc0c546a.
//
// Solidity: function token() view returns(address)
func (_Escrow *EscrowCaller) Token(opts *bind.CallOpts) (common.Address, error) {
	var out []interface{}
	err := _Escrow.contract.Call(opts, &out, "token")

	if err != nil {
		return *new(common.Address), err
	}

	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)

	return out0, err
}

// Lock is a paid mutator transaction binding the contract method 0x282d3fdf.
//
// Solidity: function lock(bytes32 intentId, uint256 amount) returns()
func (_Escrow *EscrowTransactor) Lock(opts *bind.TransactOpts, intentId [32]byte, amount *big.Int) (*types.Transaction, error) {
	return _Escrow.contract.Transact(opts, "lock", intentId, amount)
}

// Lock is a paid mutator transaction binding the contract method 0x282d3fdf.
//
// Solidity: function lock(bytes32 intentId, uint256 amount) returns()
func (_Escrow *EscrowSession) Lock(intentId [32]byte, amount *big.Int) (*types.Transaction, error) {
	return _Escrow.Contract.Lock(&_Escrow.TransactOpts, intentId, amount)
}

// Claim is a paid mutator transaction binding the contract method 0x53a47bb7.
//
// Solidity: function claim(bytes32 intentId, address recipient) returns()
func (_Escrow *EscrowTransactor) Claim(opts *bind.TransactOpts, intentId [32]byte, recipient common.Address) (*types.Transaction, error) {
	return _Escrow.contract.Transact(opts, "claim", intentId, recipient)
}

// Claim is a paid mutator transaction binding the contract method 0x53a47bb7.
//
// Solidity: function claim(bytes32 intentId, address recipient) returns()
func (_Escrow *EscrowSession) Claim(intentId [32]byte, recipient common.Address) (*types.Transaction, error) {
	return _Escrow.Contract.Claim(&_Escrow.TransactOpts, intentId, recipient)
}

// Refund is a paid mutator transaction binding the contract method 0xfa89401a.
//
// Solidity: function refund(bytes32 intentId) returns()
func (_Escrow *EscrowTransactor) Refund(opts *bind.TransactOpts, intentId [32]byte) (*types.Transaction, error) {
	return _Escrow.contract.Transact(opts, "refund", intentId)
}

// Refund is a paid mutator transaction binding the contract method 0xfa89401a.
//
// Solidity: function refund(bytes32 intentId) returns()
func (_Escrow *EscrowSession) Refund(intentId [32]byte) (*types.Transaction, error) {
	return _Escrow.Contract.Refund(&_Escrow.TransactOpts, intentId)
}

// EscrowIntentLockedIterator is returned from FilterIntentLocked and is used to iterate over the raw logs and unpacked data for IntentLocked events raised by the Escrow contract.
type EscrowIntentLockedIterator struct {
	Event *EscrowIntentLocked // Event containing the contract specifics and raw log

	contract *bind.BoundContract // Generic contract to use for unpacking event data
	event    string              // Event name to use for unpacking event data

	logs chan types.Log        // Log channel receiving the found contract events
	sub  ethereum.Subscription // Subscription for errors, completion and termination
	done bool                  // Whether the subscription completed delivering logs
	fail error                 // Occurred error to stop iteration
}

// Next advances the iterator to the subsequent event, returning whether there
// are any more events found. In case of a retrieval or parsing error, false is
// returned and Error() can be queried for the exact failure.
func (it *EscrowIntentLockedIterator) Next() bool {
	// If the iterator failed, stop iterating
	if it.fail != nil {
		return false
	}
	// If the iterator completed, deliver directly whatever's available
	if it.done {
		select {
		case log := <-it.logs:
			it.Event = new(EscrowIntentLocked)
			if err := it.contract.UnpackLog(it.Event, it.event, log); err != nil {
				it.fail = err
				return false
			}
			it.Event.Raw = log
			return true

		default:
			return false
		}
	}
	// Iterator still in progress, wait for either a data or an error event
	select {
	case log := <-it.logs:
		it.Event = new(EscrowIntentLocked)
		if err := it.contract.UnpackLog(it.Event, it.event, log); err != nil {
			it.fail = err
			return false
		}
		it.Event.Raw = log
		return true

	case err := <-it.sub.Err():
		it.done = true
		it.fail = err
		return it.Next()
	}
}

// Error returns any retrieval or parsing error occurred during filtering.
func (it *EscrowIntentLockedIterator) Error() error {
	return it.fail
}

// Close terminates the iteration process, releasing any pending underlying
// resources.
func (it *EscrowIntentLockedIterator) Close() error {
	it.sub.Unsubscribe()
	return nil
}

// EscrowIntentLocked represents a IntentLocked event raised by the Escrow contract.
type EscrowIntentLocked struct {
	IntentId [32]byte
	Sender   common.Address
	Amount   *big.Int
	Raw      types.Log // Blockchain specific contextual infos
}

// FilterIntentLocked is a free log retrieval operation binding the contract event 0x5ce8e8bd.
//
// Solidity: event IntentLocked(bytes32 indexed intentId, address indexed sender, uint256 amount)
func (_Escrow *EscrowFilterer) FilterIntentLocked(opts *bind.FilterOpts, intentId [][32]byte, sender []common.Address) (*EscrowIntentLockedIterator, error) {
	var intentIdRule []interface{}
	for _, intentIdItem := range intentId {
		intentIdRule = append(intentIdRule, intentIdItem)
	}
	var senderRule []interface{}
	for _, senderItem := range sender {
		senderRule = append(senderRule, senderItem)
	}

	logs, sub, err := _Escrow.contract.FilterLogs(opts, "IntentLocked", intentIdRule, senderRule)
	if err != nil {
		return nil, err
	}
	return &EscrowIntentLockedIterator{contract: _Escrow.contract, event: "IntentLocked", logs: logs, sub: sub}, nil
}

// WatchIntentLocked is a free log subscription operation binding the contract event 0x5ce8e8bd.
//
// Solidity: event IntentLocked(bytes32 indexed intentId, address indexed sender, uint256 amount)
func (_Escrow *EscrowFilterer) WatchIntentLocked(opts *bind.WatchOpts, sink chan<- *EscrowIntentLocked, intentId [][32]byte, sender []common.Address) (event.Subscription, error) {
	var intentIdRule []interface{}
	for _, intentIdItem := range intentId {
		intentIdRule = append(intentIdRule, intentIdItem)
	}
	var senderRule []interface{}
	for _, senderItem := range sender {
		senderRule = append(senderRule, senderItem)
	}

	logs, sub, err := _Escrow.contract.WatchLogs(opts, "IntentLocked", intentIdRule, senderRule)
	if err != nil {
		return nil, err
	}
	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case log := <-logs:
				// New log arrived, parse the event and forward to the user
				event := new(EscrowIntentLocked)
				if err := _Escrow.contract.UnpackLog(event, "IntentLocked", log); err != nil {
					return err
				}
				event.Raw = log

				select {
				case sink <- event:
				case err := <-sub.Err():
					return err
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}

// ParseIntentLocked is a log parse operation binding the contract event 0x5ce8e8bd.
//
// Solidity: event IntentLocked(bytes32 indexed intentId, address indexed sender, uint256 amount)
func (_Escrow *EscrowFilterer) ParseIntentLocked(log types.Log) (*EscrowIntentLocked, error) {
	event := new(EscrowIntentLocked)
	if err := _Escrow.contract.UnpackLog(event, "IntentLocked", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

// EscrowIntentClaimedIterator is returned from FilterIntentClaimed and is used to iterate over the raw logs and unpacked data for IntentClaimed events raised by the Escrow contract.
type EscrowIntentClaimedIterator struct {
	Event *EscrowIntentClaimed // Event containing the contract specifics and raw log

	contract *bind.BoundContract // Generic contract to use for unpacking event data
	event    string              // Event name to use for unpacking event data

	logs chan types.Log        // Log channel receiving the found contract events
	sub  ethereum.Subscription // Subscription for errors, completion and termination
	done bool                  // Whether the subscription completed delivering logs
	fail error                 // Occurred error to stop iteration
}

// Next advances the iterator to the subsequent event, returning whether there
// are any more events found. In case of a retrieval or parsing error, false is
// returned and Error() can be queried for the exact failure.
func (it *EscrowIntentClaimedIterator) Next() bool {
	// If the iterator failed, stop iterating
	if it.fail != nil {
		return false
	}
	// If the iterator completed, deliver directly whatever's available
	if it.done {
		select {
		case log := <-it.logs:
			it.Event = new(EscrowIntentClaimed)
			if err := it.contract.UnpackLog(it.Event, it.event, log); err != nil {
				it.fail = err
				return false
			}
			it.Event.Raw = log
			return true

		default:
			return false
		}
	}
	// Iterator still in progress, wait for either a data or an error event
	select {
	case log := <-it.logs:
		it.Event = new(EscrowIntentClaimed)
		if err := it.contract.UnpackLog(it.Event, it.event, log); err != nil {
			it.fail = err
			return false
		}
		it.Event.Raw = log
		return true

	case err := <-it.sub.Err():
		it.done = true
		it.fail = err
		return it.Next()
	}
}

// Error returns any retrieval or parsing error occurred during filtering.
func (it *EscrowIntentClaimedIterator) Error() error {
	return it.fail
}

// Close terminates the iteration process, releasing any pending underlying
// resources.
func (it *EscrowIntentClaimedIterator) Close() error {
	it.sub.Unsubscribe()
	return nil
}

// EscrowIntentClaimed represents a IntentClaimed event raised by the Escrow contract.
type EscrowIntentClaimed struct {
	IntentId  [32]byte
	Recipient common.Address
	Raw       types.Log // Blockchain specific contextual infos
}

// FilterIntentClaimed is a free log retrieval operation binding the contract event 0x60a56c69.
//
// Solidity: event IntentClaimed(bytes32 indexed intentId, address indexed recipient)
func (_Escrow *EscrowFilterer) FilterIntentClaimed(opts *bind.FilterOpts, intentId [][32]byte, recipient []common.Address) (*EscrowIntentClaimedIterator, error) {
	var intentIdRule []interface{}
	for _, intentIdItem := range intentId {
		intentIdRule = append(intentIdRule, intentIdItem)
	}
	var recipientRule []interface{}
	for _, recipientItem := range recipient {
		recipientRule = append(recipientRule, recipientItem)
	}

	logs, sub, err := _Escrow.contract.FilterLogs(opts, "IntentClaimed", intentIdRule, recipientRule)
	if err != nil {
		return nil, err
	}
	return &EscrowIntentClaimedIterator{contract: _Escrow.contract, event: "IntentClaimed", logs: logs, sub: sub}, nil
}

// WatchIntentClaimed is a free log subscription operation binding the contract event 0x60a56c69.
//
// Solidity: event IntentClaimed(bytes32 indexed intentId, address indexed recipient)
func (_Escrow *EscrowFilterer) WatchIntentClaimed(opts *bind.WatchOpts, sink chan<- *EscrowIntentClaimed, intentId [][32]byte, recipient []common.Address) (event.Subscription, error) {
	var intentIdRule []interface{}
	for _, intentIdItem := range intentId {
		intentIdRule = append(intentIdRule, intentIdItem)
	}
	var recipientRule []interface{}
	for _, recipientItem := range recipient {
		recipientRule = append(recipientRule, recipientItem)
	}

	logs, sub, err := _Escrow.contract.WatchLogs(opts, "IntentClaimed", intentIdRule, recipientRule)
	if err != nil {
		return nil, err
	}
	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case log := <-logs:
				// New log arrived, parse the event and forward to the user
				event := new(EscrowIntentClaimed)
				if err := _Escrow.contract.UnpackLog(event, "IntentClaimed", log); err != nil {
					return err
				}
				event.Raw = log

				select {
				case sink <- event:
				case err := <-sub.Err():
					return err
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}

// ParseIntentClaimed is a log parse operation binding the contract event 0x60a56c69.
//
// Solidity: event IntentClaimed(bytes32 indexed intentId, address indexed recipient)
func (_Escrow *EscrowFilterer) ParseIntentClaimed(log types.Log) (*EscrowIntentClaimed, error) {
	event := new(EscrowIntentClaimed)
	if err := _Escrow.contract.UnpackLog(event, "IntentClaimed", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

// EscrowIntentRefundedIterator is returned from FilterIntentRefunded and is used to iterate over the raw logs and unpacked data for IntentRefunded events raised by the Escrow contract.
type EscrowIntentRefundedIterator struct {
	Event *EscrowIntentRefunded // Event containing the contract specifics and raw log

	contract *bind.BoundContract // Generic contract to use for unpacking event data
	event    string              // Event name to use for unpacking event data

	logs chan types.Log        // Log channel receiving the found contract events
	sub  ethereum.Subscription // Subscription for errors, completion and termination
	done bool                  // Whether the subscription completed delivering logs
	fail error                 // Occurred error to stop iteration
}

// Next advances the iterator to the subsequent event, returning whether there
// are any more events found. In case of a retrieval or parsing error, false is
// returned and Error() can be queried for the exact failure.
func (it *EscrowIntentRefundedIterator) Next() bool {
	// If the iterator failed, stop iterating
	if it.fail != nil {
		return false
	}
	// If the iterator completed, deliver directly whatever's available
	if it.done {
		select {
		case log := <-it.logs:
			it.Event = new(EscrowIntentRefunded)
			if err := it.contract.UnpackLog(it.Event, it.event, log); err != nil {
				it.fail = err
				return false
			}
			it.Event.Raw = log
			return true

		default:
			return false
		}
	}
	// Iterator still in progress, wait for either a data or an error event
	select {
	case log := <-it.logs:
		it.Event = new(EscrowIntentRefunded)
		if err := it.contract.UnpackLog(it.Event, it.event, log); err != nil {
			it.fail = err
			return false
		}
		it.Event.Raw = log
		return true

	case err := <-it.sub.Err():
		it.done = true
		it.fail = err
		return it.Next()
	}
}

// Error returns any retrieval or parsing error occurred during filtering.
func (it *EscrowIntentRefundedIterator) Error() error {
	return it.fail
}

// Close terminates the iteration process, releasing any pending underlying
// resources.
func (it *EscrowIntentRefundedIterator) Close() error {
	it.sub.Unsubscribe()
	return nil
}

// EscrowIntentRefunded represents a IntentRefunded event raised by the Escrow contract.
type EscrowIntentRefunded struct {
	IntentId [32]byte
	Raw      types.Log // Blockchain specific contextual infos
}

// FilterIntentRefunded is a free log retrieval operation binding the contract event 0x1b3e6e1a.
//
// Solidity: event IntentRefunded(bytes32 indexed intentId)
func (_Escrow *EscrowFilterer) FilterIntentRefunded(opts *bind.FilterOpts, intentId [][32]byte) (*EscrowIntentRefundedIterator, error) {
	var intentIdRule []interface{}
	for _, intentIdItem := range intentId {
		intentIdRule = append(intentIdRule, intentIdItem)
	}

	logs, sub, err := _Escrow.contract.FilterLogs(opts, "IntentRefunded", intentIdRule)
	if err != nil {
		return nil, err
	}
	return &EscrowIntentRefundedIterator{contract: _Escrow.contract, event: "IntentRefunded", logs: logs, sub: sub}, nil
}

// WatchIntentRefunded is a free log subscription operation binding the contract event 0x1b3e6e1a.
//
// Solidity: event IntentRefunded(bytes32 indexed intentId)
func (_Escrow *EscrowFilterer) WatchIntentRefunded(opts *bind.WatchOpts, sink chan<- *EscrowIntentRefunded, intentId [][32]byte) (event.Subscription, error) {
	var intentIdRule []interface{}
	for _, intentIdItem := range intentId {
		intentIdRule = append(intentIdRule, intentIdItem)
	}

	logs, sub, err := _Escrow.contract.WatchLogs(opts, "IntentRefunded", intentIdRule)
	if err != nil {
		return nil, err
	}
	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case log := <-logs:
				// New log arrived, parse the event and forward to the user
				event := new(EscrowIntentRefunded)
				if err := _Escrow.contract.UnpackLog(event, "IntentRefunded", log); err != nil {
					return err
				}
				event.Raw = log

				select {
				case sink <- event:
				case err := <-sub.Err():
					return err
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}

// ParseIntentRefunded is a log parse operation binding the contract event 0x1b3e6e1a.
//
// Solidity: event IntentRefunded(bytes32 indexed intentId)
func (_Escrow *EscrowFilterer) ParseIntentRefunded(log types.Log) (*EscrowIntentRefunded, error) {
	event := new(EscrowIntentRefunded)
	if err := _Escrow.contract.UnpackLog(event, "IntentRefunded", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}
