package sqlinline

const QSelectSession = `--sql 4d36b25f-dca4-441f-883f-e565c69928f5
select logged_in, credit_balance, current_tier, purchase_history
from ledger_sessions
where namespace = $1
limit 1;
`

const QUpsertSession = `--sql 623ef68a-a78c-47df-9e94-6a1b7c0f4b69
insert into ledger_sessions (namespace, logged_in, credit_balance, current_tier, purchase_history, updated_at)
values ($1, $2, $3, $4, $5::jsonb, now())
on conflict (namespace) do update set
    logged_in = excluded.logged_in,
    credit_balance = excluded.credit_balance,
    current_tier = excluded.current_tier,
    purchase_history = excluded.purchase_history,
    updated_at = now();
`

// QSetSessionTier is used by operator tooling; it leaves history untouched.
const QSetSessionTier = `--sql 44d653af-3ec4-4d0a-b288-f7accfdedf8d
update ledger_sessions
set current_tier = $2,
    credit_balance = coalesce($3, credit_balance),
    updated_at = now()
where namespace = $1
returning current_tier, credit_balance;
`
