package host

// Contract is the entry-point surface of a contract code. Payloads are JSON
// documents in the externally tagged enum form used on the wire.
type Contract interface {
	Instantiate(deps Deps, env Env, info MessageInfo, msg []byte) (*Response, error)
	Execute(deps Deps, env Env, info MessageInfo, msg []byte) (*Response, error)
	Query(deps Deps, env Env, msg []byte) ([]byte, error)
	Reply(deps Deps, env Env, reply Reply) (*Response, error)
}
