/*
Package actions provides ready-made leaf actions: constant results, a
countdown that needs several ticks to finish, and blackboard-driven actions
whose outcome is computed from shared agent state with expr-lang expressions.

Real game or agent behaviour lives outside of Arbor; these actions exist for
tests, demos and simple data-driven conditions.
*/
package actions
