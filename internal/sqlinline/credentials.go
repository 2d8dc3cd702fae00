package sqlinline

const QSelectCredential = `--sql 12761f59-e4d0-44a0-bb76-72a060dde739
select identifier, secret_hash, created_at
from ledger_credentials
where namespace = $1
limit 1;
`

const QUpsertCredential = `--sql 7ed9d744-f003-4f03-a6ea-9e18244b87ea
insert into ledger_credentials (namespace, identifier, secret_hash, created_at)
values ($1, $2, $3, $4)
on conflict (namespace) do update set
    identifier = excluded.identifier,
    secret_hash = excluded.secret_hash,
    created_at = excluded.created_at;
`
